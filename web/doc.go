// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package web renders the public site and the admin area as HTML.

Templates are Liquid files embedded from templates/. Each page is
rendered first and then placed into layout.liquid as {{ content }}.
Values reach templates as plain maps with the same field names as the
JSON API. Templates escape every stored value with the escape filter.

Extra filters:

	ago         "3 days ago" (go-humanize)
	short_date  "Mar 5, 2024"
	stars       rating as five stars
	label       "in-progress" -> "In Progress"
	comma       1234567 -> "1,234,567"

Admin pages only list data. Edits go through the JSON API under
/api/admin.
*/
package web
