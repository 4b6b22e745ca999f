// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package realtime pushes site settings changes to browsers over a
// websocket at /api/settings/stream. Each message looks like
//
//	{"table":"site_settings","event":"update","keys":["site_name"]}
//
// Clients refetch /api/settings/public when they see one. With REDIS_URL
// set, events travel through the site_settings_changes channel so that
// every instance behind a load balancer hears them.
package realtime
