// Package job runs background and periodic tasks on River.
//
// Every task is dispatched through one River job kind carrying the task name
// and a JSON payload, so tasks are plain types:
//
//	type RefreshRates struct{ ... }
//
//	func (t *RefreshRates) Name() string     { return "refresh_exchange_rates" }
//	func (t *RefreshRates) Schedule() string { return "0 * * * *" }
//	func (t *RefreshRates) Handle(ctx context.Context) error { ... }
//
//	m, err := job.NewManager(pool, job.WithScheduledTask(refresh, true))
//
// Cron expressions use five fields or descriptors such as "@hourly".
package job
