// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify emails the site owner about new contact messages and job
// applications. SESNotifier sends through SES v2; LogNotifier is used when
// SES is not configured. Alerts checks the email_alerts setting before
// every send.
package notify
