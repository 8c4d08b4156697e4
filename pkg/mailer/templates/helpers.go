package templates

import (
	"time"

	"github.com/oksasatya/superstar-bot/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithResetURL(url string) Option { return func(d *EmailData) { d.ResetURL = url } }
func WithPhone(phone string) Option  { return func(d *EmailData) { d.Phone = phone } }

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04")
	}
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,
		Type:  typ,
	}
	if cfg != nil {
		d.CompanyName = cfg.CompanyName
		d.AppName = cfg.AppName
		d.SupportURL = cfg.SupportURL
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewResetPasswordData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, ResetPassword, name, email, opts...)
	return ToMap(d)
}
