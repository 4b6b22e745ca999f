// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"strconv"
	"time"
)

// Site setting keys
const (
	SettingSiteName              = "site_name"
	SettingSiteDescription       = "site_description"
	SettingContactEmail          = "contact_email"
	SettingPhone                 = "phone"
	SettingAddress               = "address"
	SettingFacebookURL           = "facebook_url"
	SettingTwitterURL            = "twitter_url"
	SettingInstagramURL          = "instagram_url"
	SettingLinkedInURL           = "linkedin_url"
	SettingEmailAlerts           = "email_alerts"
	SettingNewUserNotifications  = "new_user_notifications"
	SettingMarketingEmails       = "marketing_emails"
	SettingActivitySummary       = "activity_summary"
	SettingTwoFactorAuth         = "two_factor_auth"
	SettingPasswordResetInterval = "password_reset_interval"
	SettingSessionTimeout        = "session_timeout"
)

type settingKind int

const (
	kindText settingKind = iota
	kindBool
	kindInt
)

type settingDef struct {
	Key     string
	Group   string
	Default string
	Public  bool
	kind    settingKind
}

// settingDefs lists every known key in display order.
var settingDefs = []settingDef{
	{SettingSiteName, "general", "Golden Age Infotech", true, kindText},
	{SettingSiteDescription, "general", "Professional IT solutions for modern businesses", true, kindText},
	{SettingContactEmail, "general", "info@goldenageinfotech.com", true, kindText},
	{SettingPhone, "general", "+1 (555) 123-4567", true, kindText},
	{SettingAddress, "general", "123 Tech Boulevard, Silicon Valley, CA 94043", true, kindText},
	{SettingFacebookURL, "social", "", true, kindText},
	{SettingTwitterURL, "social", "", true, kindText},
	{SettingInstagramURL, "social", "", true, kindText},
	{SettingLinkedInURL, "social", "", true, kindText},
	{SettingEmailAlerts, "notifications", "true", false, kindBool},
	{SettingNewUserNotifications, "notifications", "true", false, kindBool},
	{SettingMarketingEmails, "notifications", "false", false, kindBool},
	{SettingActivitySummary, "notifications", "true", false, kindBool},
	{SettingTwoFactorAuth, "security", "false", false, kindBool},
	{SettingPasswordResetInterval, "security", "90", false, kindInt},
	{SettingSessionTimeout, "security", "30", false, kindInt},
}

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SettingUpdate struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (u SettingUpdate) Validate() error {
	def, ok := lookupSetting(u.Key)
	if !ok {
		return &ValidationError{Field: "key", Reason: fmt.Sprintf("unknown setting %q", u.Key)}
	}
	switch def.kind {
	case kindBool:
		if _, err := strconv.ParseBool(u.Value); err != nil {
			return &ValidationError{Field: u.Key, Reason: "must be true or false"}
		}
	case kindInt:
		n, err := strconv.Atoi(u.Value)
		if err != nil || n <= 0 {
			return &ValidationError{Field: u.Key, Reason: "must be a positive number"}
		}
	}
	return nil
}

// SettingsGroups is the grouped view shown on /admin/settings.
type SettingsGroups struct {
	General       map[string]string `json:"general"`
	Social        map[string]string `json:"social"`
	Notifications map[string]bool   `json:"notifications"`
	Security      map[string]string `json:"security"`
}

// GroupSettings folds stored values over the defaults.
func GroupSettings(values map[string]string) SettingsGroups {
	g := SettingsGroups{
		General:       map[string]string{},
		Social:        map[string]string{},
		Notifications: map[string]bool{},
		Security:      map[string]string{},
	}
	for _, def := range settingDefs {
		v, ok := values[def.Key]
		if !ok {
			v = def.Default
		}
		switch def.Group {
		case "general":
			g.General[def.Key] = v
		case "social":
			g.Social[def.Key] = v
		case "notifications":
			g.Notifications[def.Key] = v == "true"
		case "security":
			if def.kind == kindBool {
				g.Security[def.Key] = strconv.FormatBool(v == "true")
			} else {
				g.Security[def.Key] = v
			}
		}
	}
	return g
}

// PublicSettings returns the subset of values safe to expose on public
// pages, with defaults filled in.
func PublicSettings(values map[string]string) map[string]string {
	out := make(map[string]string)
	for _, def := range settingDefs {
		if !def.Public {
			continue
		}
		if v, ok := values[def.Key]; ok && v != "" {
			out[def.Key] = v
		} else {
			out[def.Key] = def.Default
		}
	}
	return out
}

// DefaultSettings returns the seed rows.
func DefaultSettings() []SettingUpdate {
	out := make([]SettingUpdate, 0, len(settingDefs))
	for _, def := range settingDefs {
		out = append(out, SettingUpdate{Key: def.Key, Value: def.Default})
	}
	return out
}

func IsSettingKey(key string) bool {
	_, ok := lookupSetting(key)
	return ok
}

func lookupSetting(key string) (settingDef, bool) {
	for _, def := range settingDefs {
		if def.Key == key {
			return def, true
		}
	}
	return settingDef{}, false
}
