/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package lock

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"

	"github.com/adrias-freebrand/cookie-goat/internal/system/database/client"
	"github.com/adrias-freebrand/cookie-goat/internal/system/database/provider"
	"github.com/adrias-freebrand/cookie-goat/internal/system/errors"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
)

// DistributedLock guards jobs that must run on at most one instance at a
// time, such as the scheduled cookie scan.
type DistributedLock interface {
	TryAcquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context) error
}

// PostgresLock implements DistributedLock using PostgreSQL advisory locks.
// Advisory locks are session-scoped, so a successful TryAcquire pins one
// connection and holds it until Release.
type PostgresLock struct {
	dbClient client.DBClientInterface
	conn     *sql.Conn
	lockID   int64
	key      string
}

func NewPostgresLock() *PostgresLock {
	return &PostgresLock{}
}

// Advisory locks take a bigint key, so string keys are hashed down first.
func generateLockKey(key string) (int64, error) {

	h := fnv.New64a()
	if _, err := h.Write([]byte(key)); err != nil {
		return 0, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_KEY_GEN.Code,
			Message:     errors.LOCK_KEY_GEN.Message,
			Description: fmt.Sprintf("Failed to hash lock key %q.", key),
		}, err)
	}
	return int64(h.Sum64()), nil
}

// TryAcquire attempts to take the advisory lock without blocking. A false
// return with a nil error means another instance holds it. On success the
// lock keeps its connection open until Release.
func (l *PostgresLock) TryAcquire(ctx context.Context, key string) (bool, error) {

	if l.conn != nil {
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: fmt.Sprintf("Lock %q is already held by this instance.", l.key),
		}, nil)
	}

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: "Failed during DB client creation for advisory lock acquiring.",
		}, err)
	}

	lockID, err := generateLockKey(key)
	if err != nil {
		dbClient.Close()
		return false, err
	}

	conn, err := dbClient.Conn(ctx)
	if err != nil {
		dbClient.Close()
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: "Failed to pin a connection for the advisory lock session.",
		}, err)
	}

	var acquired bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", lockID).
		Scan(&acquired); err != nil {
		conn.Close()
		dbClient.Close()
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: "Failed to execute pg_try_advisory_lock.",
		}, err)
	}

	if !acquired {
		conn.Close()
		dbClient.Close()
		log.GetLogger().Debug(fmt.Sprintf("Advisory lock %q held elsewhere", key))
		return false, nil
	}

	l.dbClient = dbClient
	l.conn = conn
	l.lockID = lockID
	l.key = key

	log.GetLogger().Debug(fmt.Sprintf("Advisory lock %q acquired", key))
	return true, nil
}

// Release frees the held advisory lock and returns its connection to the
// pool.
func (l *PostgresLock) Release(ctx context.Context) error {

	if l.conn == nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RELEASE.Code,
			Message:     errors.LOCK_RELEASE.Message,
			Description: "No advisory lock is held by this instance.",
		}, nil)
	}

	var released bool
	err := l.conn.QueryRowContext(ctx, "SELECT pg_advisory_unlock($1)", l.lockID).
		Scan(&released)

	l.conn.Close()
	l.dbClient.Close()
	l.conn = nil
	l.dbClient = nil

	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RELEASE.Code,
			Message:     errors.LOCK_RELEASE.Message,
			Description: "Failed to execute pg_advisory_unlock.",
		}, err)
	}
	if !released {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RELEASE.Code,
			Message:     errors.LOCK_RELEASE.Message,
			Description: fmt.Sprintf("pg_advisory_unlock reported no lock held for lock id %d.", l.lockID),
		}, nil)
	}

	log.GetLogger().Debug(fmt.Sprintf("Advisory lock %q released", l.key))
	return nil
}
