package templates

import "time"

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

// NewWelcomeData builds the data map for the welcome template sent after signup.
func NewWelcomeData(appName, name, email string, opts ...Option) map[string]any {
	d := EmailData{Name: name, Email: email, AppName: appName}
	WithTime(time.Now())(&d)
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
