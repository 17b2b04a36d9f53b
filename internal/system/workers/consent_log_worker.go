package workers

import (
	"github.com/adrias-freebrand/cookie-goat/internal/consentlog/model"
	"github.com/adrias-freebrand/cookie-goat/internal/consentlog/store"
	"github.com/adrias-freebrand/cookie-goat/internal/system/constants"
	"github.com/adrias-freebrand/cookie-goat/internal/system/log"
)

var ConsentLogQueue chan model.ConsentLogEntry

// StartConsentLogWorker starts the background writer that drains the consent
// log queue. Log persistence is deliberately decoupled from the consent
// response path; a database outage must never block a cookie write.
func StartConsentLogWorker() {

	ConsentLogQueue = make(chan model.ConsentLogEntry, constants.DefaultQueueSize)

	go func() {
		for entry := range ConsentLogQueue {
			if err := store.AddConsentLogEntry(entry); err != nil {
				log.GetLogger().Error("Failed to persist consent log entry", log.Error(err))
			}
		}
	}()
}

// EnqueueConsentLog hands an entry to the background writer. Never blocks;
// when the queue is full the entry is dropped and a warning is logged.
func EnqueueConsentLog(entry model.ConsentLogEntry) {
	if ConsentLogQueue == nil {
		return
	}
	select {
	case ConsentLogQueue <- entry:
	default:
		log.GetLogger().Warn("Consent log queue is full, dropping entry",
			log.String("hashedIp", entry.HashedIP))
	}
}
