package cron_config

type Config struct {
	// Render handle janitor sweep, every five minutes
	CronScheduleHandleJanitor string `env:"CRON_SCHEDULE_HANDLE_JANITOR" envDefault:"0 */5 * * * *"`
}
