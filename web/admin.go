// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/devpatel66/golden-sleek-vision/models"
	"github.com/devpatel66/golden-sleek-vision/store"
)

// table is one admin listing. Rows are pre-formatted cells.
type table struct {
	Title   string     `json:"title"`
	API     string     `json:"api"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

// section describes an admin listing page.
type section struct {
	title  string
	tables func(ctx context.Context, f store.ListFilter) ([]table, error)
}

func day(t time.Time) string {
	return t.Format("2006-01-02")
}

func listTable[T any](ctx context.Context, f store.ListFilter, title, api string, columns []string,
	list func(context.Context, store.ListFilter) ([]T, int, error), row func(T) []string,
) (table, error) {
	items, total, err := list(ctx, f)
	if err != nil {
		return table{}, err
	}
	t := table{Title: title, API: api, Columns: columns, Rows: make([][]string, 0, len(items)), Total: total}
	for _, it := range items {
		t.Rows = append(t.Rows, row(it))
	}
	return t, nil
}

func (p *Pages) sections() map[string]section {
	st := p.store
	one := func(t table, err error) ([]table, error) {
		if err != nil {
			return nil, err
		}
		return []table{t}, nil
	}

	return map[string]section{
		"services": {"Services", func(ctx context.Context, f store.ListFilter) ([]table, error) {
			return one(listTable(ctx, f, "Services", "/api/admin/services",
				[]string{"Title", "Category", "Status", "Updated"}, st.Services.List,
				func(s models.Service) []string {
					return []string{s.Title, s.Category, string(s.Status), day(s.UpdatedAt)}
				}))
		}},
		"projects": {"Projects", func(ctx context.Context, f store.ListFilter) ([]table, error) {
			return one(listTable(ctx, f, "Projects", "/api/admin/projects",
				[]string{"Title", "Client", "Category", "Status"}, st.Projects.List,
				func(pr models.Project) []string {
					return []string{pr.Title, pr.Client, pr.Category, string(pr.Status)}
				}))
		}},
		"blogs": {"Blog posts", func(ctx context.Context, f store.ListFilter) ([]table, error) {
			return one(listTable(ctx, f, "Blog posts", "/api/admin/blogs",
				[]string{"Title", "Author", "Category", "Status", "Views"}, st.Blogs.List,
				func(b models.Blog) []string {
					return []string{b.Title, b.Author, b.Category, string(b.Status), strconv.FormatInt(b.Views, 10)}
				}))
		}},
		"content": {"Content", func(ctx context.Context, f store.ListFilter) ([]table, error) {
			return one(listTable(ctx, f, "Content", "/api/admin/content",
				[]string{"Title", "Author", "Status", "Updated"}, st.Content.List,
				func(c models.Content) []string {
					return []string{c.Title, c.Author, string(c.Status), day(c.UpdatedAt)}
				}))
		}},
		"testimonials": {"Testimonials", func(ctx context.Context, f store.ListFilter) ([]table, error) {
			return one(listTable(ctx, f, "Testimonials", "/api/admin/testimonials",
				[]string{"Name", "Company", "Rating", "Status"}, st.Testimonials.List,
				func(t models.Testimonial) []string {
					return []string{t.Name, t.Company, strconv.Itoa(t.Rating), string(t.Status)}
				}))
		}},
		"users": {"Users", func(ctx context.Context, f store.ListFilter) ([]table, error) {
			return one(listTable(ctx, f, "Users", "/api/admin/users",
				[]string{"Name", "Email", "Role", "Status", "Last login"}, st.Users.List,
				func(u models.User) []string {
					last := "never"
					if u.LastLogin != nil {
						last = day(*u.LastLogin)
					}
					return []string{u.Name, u.Email, string(u.Role), string(u.Status), last}
				}))
		}},
		"careers": {"Careers", func(ctx context.Context, f store.ListFilter) ([]table, error) {
			jobs, err := listTable(ctx, f, "Job positions", "/api/admin/careers/jobs",
				[]string{"Title", "Department", "Type", "Status", "Applications"}, st.Positions.List,
				func(j models.JobPosition) []string {
					return []string{j.Title, j.Department, string(j.Type), string(j.Status), strconv.Itoa(j.ApplicationsCount)}
				})
			if err != nil {
				return nil, err
			}
			// the status filter names a position status, not an application one
			apps, err := listTable(ctx, store.ListFilter{Limit: f.Limit}, "Applications", "/api/admin/careers/applications",
				[]string{"Applicant", "Email", "Position", "Status", "Applied"}, st.Applications.List,
				func(a models.JobApplication) []string {
					return []string{a.FirstName + " " + a.LastName, a.Email, a.JobTitle, string(a.Status), day(a.AppliedDate)}
				})
			if err != nil {
				return nil, err
			}
			return []table{jobs, apps}, nil
		}},
	}
}

// AdminSection handles GET /admin/{section}
func (p *Pages) AdminSection(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("section")
	sec, ok := p.sections()[name]
	if !ok {
		p.NotFound(w, r)
		return
	}

	f := store.ListFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
		Limit:  store.MaxPageSize,
	}
	tables, err := sec.tables(r.Context(), f)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	b := p.bindings(r, "admin_"+name)
	b["title"] = sec.title
	b["section"] = name
	b["search"] = f.Search
	b["tables"] = bind(tables)
	p.render.Render(w, http.StatusOK, "admin_section", b)
}

// Dashboard handles GET /admin
func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := p.store.Dashboard(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	messages, err := listTable(r.Context(), store.ListFilter{Status: string(models.ContactNew), Limit: 10},
		"New messages", "/api/admin/contacts",
		[]string{"From", "Email", "Subject", "Received"}, p.store.Contacts.List,
		func(c models.ContactSubmission) []string {
			return []string{c.Name, c.Email, c.Subject, day(c.CreatedAt)}
		})
	if err != nil {
		p.fail(w, r, err)
		return
	}

	b := p.bindings(r, "admin")
	b["title"] = "Dashboard"
	b["stats"] = bind(stats)
	b["messages"] = bind(messages)
	p.render.Render(w, http.StatusOK, "admin_dashboard", b)
}

type settingField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Bool  bool   `json:"bool"`
}

type settingGroup struct {
	Name   string         `json:"name"`
	Fields []settingField `json:"fields"`
}

// settingForm lays the grouped settings out in display order.
func settingForm(g models.SettingsGroups) []settingGroup {
	groups := []settingGroup{{Name: "general"}, {Name: "social"}, {Name: "notifications"}, {Name: "security"}}
	for _, d := range models.DefaultSettings() {
		k := d.Key
		if v, ok := g.General[k]; ok {
			groups[0].Fields = append(groups[0].Fields, settingField{Key: k, Value: v})
		} else if v, ok := g.Social[k]; ok {
			groups[1].Fields = append(groups[1].Fields, settingField{Key: k, Value: v})
		} else if v, ok := g.Notifications[k]; ok {
			groups[2].Fields = append(groups[2].Fields, settingField{Key: k, Value: strconv.FormatBool(v), Bool: true})
		} else if v, ok := g.Security[k]; ok {
			isBool := d.Value == "true" || d.Value == "false"
			groups[3].Fields = append(groups[3].Fields, settingField{Key: k, Value: v, Bool: isBool})
		}
	}
	return groups
}

// Settings handles GET /admin/settings. Saving goes through the JSON API.
func (p *Pages) Settings(w http.ResponseWriter, r *http.Request) {
	groups, err := p.store.Settings.Grouped(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}

	b := p.bindings(r, "admin_settings")
	b["title"] = "Settings"
	b["settings"] = bind(settingForm(groups))
	p.render.Render(w, http.StatusOK, "admin_settings", b)
}
