// Package jobs provides scheduled background tasks built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// PendingOrderBroadcastJob re-announces orders that no delivery partner has claimed
// yet, so partners that connected after an order was placed still hear about it.
//
// # Usage
//
//	job, err := jobs.NewPendingOrderBroadcastJob(handler, jobs.PendingOrderBroadcastConfig{
//		Schedule:   "*/30 * * * * *",
//		StaleAfter: time.Minute,
//	}, metrics, logger)
//
//	manager := jobs.NewJobManager(logger, job)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// Schedules use the six field cron format with a leading seconds field.
package jobs
