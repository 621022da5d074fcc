// Package reminder sends contest reminders at configured lead times.
//
// A reminder for lead time L minutes is due when the run happens within five
// minutes of start-L. Each (contest, lead time) pair fires at most once: the
// ledger in reminders_sent.json records "{L}m" after a successful delivery
// and is saved at the end of every run. Runs are expected to come from cron
// at least every ten minutes; a coarser schedule can miss windows.
package reminder
