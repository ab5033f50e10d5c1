// Package jobs provides scheduled background tasks for the purchasing service.
//
// Jobs are built on github.com/robfig/cron/v3 with second precision schedules.
//
// # Available Jobs
//
// SequenceReconcileJob raises the order number counter to the highest sequence stored
// in purchase_orders. It protects against a Redis counter that was flushed or a
// counters row that was restored from an older backup. When a Redis lock client is
// given only one instance reconciles at a time.
//
// # Usage
//
//	reconcile := jobs.NewSequenceReconcileJob(repo, counter, locker, "@every 5m", log)
//	jobManager := jobs.NewJobManager(reconcile)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer jobManager.StopAll()
package jobs
