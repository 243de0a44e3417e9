package main

import (
	"github.com/sirupsen/logrus"

	"gradebook/internal/eventbus"
)

// subscribeAudit logs every panel event and returns a function removing the
// subscriptions
func subscribeAudit(bus eventbus.EventBus, log logrus.FieldLogger) func() {
	log = log.WithField("component", "audit")
	unsubs := []func(){
		bus.Subscribe(eventbus.EventRequestStarted, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.RequestStartedEvent)
			log.WithFields(logrus.Fields{
				"control":  ev.Control,
				"endpoint": ev.Endpoint,
				"payload":  ev.Payload.Values().Encode(),
			}).Info("request started")
		}),
		bus.Subscribe(eventbus.EventRequestFinished, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.RequestFinishedEvent)
			entry := log.WithFields(logrus.Fields{"control": ev.Control, "outcome": ev.Outcome})
			if ev.Err != nil {
				entry = entry.WithError(ev.Err)
			}
			entry.Info("request finished")
		}),
		bus.Subscribe(eventbus.EventOverloadDecided, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.OverloadDecidedEvent)
			entry := log.WithFields(logrus.Fields{
				"count":    ev.Count,
				"accepted": ev.Accepted,
				"skipped":  ev.Skipped,
			})
			if ev.Err != nil {
				entry.WithError(ev.Err).Warn("overload aborted")
				return
			}
			entry.Info("overload decided")
		}),
		bus.Subscribe(eventbus.EventExportSaved, func(e eventbus.DomainEvent) {
			ev := e.(eventbus.ExportSavedEvent)
			entry := log.WithFields(logrus.Fields{"target": ev.Target, "path": ev.Path})
			if ev.Err != nil {
				entry.WithError(ev.Err).Warn("export failed")
				return
			}
			entry.Info("export saved")
		}),
	}

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
