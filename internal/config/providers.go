package config

import "strings"

// Known consumer mail providers, keyed by address domain. Taken from the
// provider lists the upstream skills shipped with.
type providerEndpoints struct {
	SMTPHost     string
	SMTPPort     int
	SMTPStartTLS bool
	IMAPHost     string
	IMAPPort     int
}

var knownProviders = map[string]providerEndpoints{
	"gmail.com":   {SMTPHost: "smtp.gmail.com", SMTPPort: 587, SMTPStartTLS: true, IMAPHost: "imap.gmail.com", IMAPPort: 993},
	"outlook.com": {SMTPHost: "smtp.office365.com", SMTPPort: 587, SMTPStartTLS: true, IMAPHost: "outlook.office365.com", IMAPPort: 993},
	"hotmail.com": {SMTPHost: "smtp.live.com", SMTPPort: 587, SMTPStartTLS: true, IMAPHost: "outlook.office365.com", IMAPPort: 993},
	"yahoo.com":   {SMTPHost: "smtp.mail.yahoo.com", SMTPPort: 587, SMTPStartTLS: true, IMAPHost: "imap.mail.yahoo.com", IMAPPort: 993},
	"icloud.com":  {SMTPHost: "smtp.mail.me.com", SMTPPort: 587, SMTPStartTLS: true, IMAPHost: "imap.mail.me.com", IMAPPort: 993},
	"qq.com":      {SMTPHost: "smtp.qq.com", SMTPPort: 587, SMTPStartTLS: true, IMAPHost: "imap.qq.com", IMAPPort: 993},
	"163.com":     {SMTPHost: "smtp.163.com", SMTPPort: 587, SMTPStartTLS: true, IMAPHost: "imap.163.com", IMAPPort: 993},
	"126.com":     {SMTPHost: "smtp.126.com", SMTPPort: 587, SMTPStartTLS: true, IMAPHost: "imap.126.com", IMAPPort: 993},
	"139.com":     {SMTPHost: "smtp.139.com", SMTPPort: 587, SMTPStartTLS: true, IMAPHost: "imap.139.com", IMAPPort: 993},
}

// ApplyProviderDefaults fills in missing IMAP/SMTP hosts from the account
// domain. Unknown domains fall back to the conventional imap./smtp.
// subdomain names.
func ApplyProviderDefaults(cfg *Config) {
	domain := addressDomain(cfg.Auth.Username)
	if domain == "" {
		return
	}

	provider, known := knownProviders[domain]

	if cfg.IMAP.Host == "" {
		if known {
			cfg.IMAP.Host = provider.IMAPHost
			cfg.IMAP.Port = provider.IMAPPort
		} else {
			cfg.IMAP.Host = "imap." + domain
			cfg.IMAP.Port = 993
		}
		cfg.IMAP.TLS = true
		cfg.IMAP.StartTLS = false
	}

	if cfg.SMTP.Host == "" {
		if known {
			cfg.SMTP.Host = provider.SMTPHost
			cfg.SMTP.Port = provider.SMTPPort
			cfg.SMTP.StartTLS = provider.SMTPStartTLS
		} else {
			cfg.SMTP.Host = "smtp." + domain
			cfg.SMTP.Port = 587
			cfg.SMTP.StartTLS = true
		}
		cfg.SMTP.TLS = false
	}
}

func addressDomain(address string) string {
	at := strings.LastIndex(address, "@")
	if at < 0 || at == len(address)-1 {
		return ""
	}
	return strings.ToLower(address[at+1:])
}
