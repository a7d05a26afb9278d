package service

import (
	"boardbill-be-svc/pkg/logger"
)

// Notifier publishes change events after successful writes so refresh
// collaborators can re-read fresh rows. Delivery is fire-and-forget; a
// subscriber that misses an event just refreshes on the next one.
type Notifier interface {
	CycleChanged(cycleID, monthKey string)
	BillsChanged(cycleID string)
	BillChanged(billID string)
}

// logNotifier logs change events; the realtime transport is an external
// collaborator and not part of this service
type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a Notifier backed by the application logger
func NewLogNotifier(logger *logger.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) CycleChanged(cycleID, monthKey string) {
	n.logger.WithFields(map[string]interface{}{
		"cycle_id":  cycleID,
		"month_key": monthKey,
	}).Info("Billing cycle changed")
}

func (n *logNotifier) BillsChanged(cycleID string) {
	n.logger.WithField("cycle_id", cycleID).Info("Bills changed for cycle")
}

func (n *logNotifier) BillChanged(billID string) {
	n.logger.WithField("bill_id", billID).Info("Bill changed")
}
