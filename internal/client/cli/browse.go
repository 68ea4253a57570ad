package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/parishportal/parishportal/internal/client/client"
	"github.com/parishportal/parishportal/internal/client/gate"
	"github.com/parishportal/parishportal/internal/client/services"
	"github.com/parishportal/parishportal/internal/common"
	"github.com/parishportal/parishportal/internal/filex"
)

var errUsage = errors.New("usage")

func idArg(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		printlnFn("Usage:", usage)
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage:", usage)
		return 0, errUsage
	}
	return id, nil
}

// reportFetchError prints the retry affordance for transport-level
// failures.
func reportFetchError(err error) {
	printlnFn("Could not load data:", err)
	printlnFn("Check your connection and try again")
}

// Events lists upcoming events, optionally filtered by category.
func (a *App) Events(ctx context.Context, args []string) error {
	opts := &client.ListOptions{Limit: 20}
	if len(args) > 0 {
		opts.Category = args[0]
	}

	res, err := a.events.List(ctx, opts)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Could not load events:", res.Message)
		return nil
	}

	for _, ev := range res.Data {
		line := fmt.Sprintf("#%d  %s  %s", ev.ID, ev.StartTime.Format("Mon 02 Jan 15:04"), ev.Title)
		if ev.Location != "" {
			line += "  @ " + ev.Location
		}
		printlnFn(line)
	}
	if p := res.Pagination; p != nil && p.Pages > 1 {
		printlnFn(fmt.Sprintf("-- page %d of %d (%d total)", p.Page, p.Pages, p.Total))
	}
	return nil
}

// Event shows one event in detail.
func (a *App) Event(ctx context.Context, args []string) error {
	id, err := idArg(args, "event <id>")
	if err != nil {
		return err
	}

	res, err := a.events.Get(ctx, id)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Could not load event:", res.Message)
		return nil
	}

	ev := res.Data
	printlnFn(ev.Title)
	printlnFn("When: ", ev.StartTime.Format("Monday, 2 January 2006 15:04"))
	if ev.Location != "" {
		printlnFn("Where:", ev.Location)
	}
	if ev.Description != "" {
		printlnFn(ev.Description)
	}
	printlnFn("Image:", a.events.ImageURL(ev.ID))
	return nil
}

// ExportICS writes an .ics file for the event into the current directory.
func (a *App) ExportICS(ctx context.Context, args []string) error {
	if !a.guard(gate.RequireMember, "/member-portal/calendar") {
		return nil
	}

	id, err := idArg(args, "ical <event-id>")
	if err != nil {
		return err
	}

	res, err := a.events.Get(ctx, id)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Could not load event:", res.Message)
		return nil
	}

	ev := res.Data
	name := fmt.Sprintf("event-%d.ics", ev.ID)
	if err := os.WriteFile(name, []byte(services.ICS(&ev)), 0o660); err != nil {
		printlnFn("error:", err)
		return err
	}
	printlnFn("Saved", name)
	return nil
}

// GoogleLink prints an "add to Google Calendar" link for the event.
func (a *App) GoogleLink(ctx context.Context, args []string) error {
	if !a.guard(gate.RequireMember, "/member-portal/calendar") {
		return nil
	}

	id, err := idArg(args, "gcal <event-id>")
	if err != nil {
		return err
	}

	res, err := a.events.Get(ctx, id)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Could not load event:", res.Message)
		return nil
	}

	ev := res.Data
	printlnFn(services.GoogleCalendarURL(&ev))
	return nil
}

// Ministries lists ministries.
func (a *App) Ministries(ctx context.Context) error {
	res, err := a.ministries.List(ctx, nil)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Could not load ministries:", res.Message)
		return nil
	}

	for _, m := range res.Data {
		line := fmt.Sprintf("#%d  %s", m.ID, m.Name)
		if m.Leader != "" {
			line += "  (led by " + m.Leader + ")"
		}
		if m.MeetingTime != "" {
			line += "  " + m.MeetingTime
		}
		printlnFn(line)
	}
	return nil
}

// Posts lists published posts, optionally filtered by category.
func (a *App) Posts(ctx context.Context, args []string) error {
	opts := &client.ListOptions{Limit: 20, Status: "published"}
	if len(args) > 0 {
		opts.Category = args[0]
	}

	res, err := a.posts.List(ctx, opts)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Could not load posts:", res.Message)
		return nil
	}

	for _, p := range res.Data {
		printlnFn(fmt.Sprintf("%-30s  %s", p.Slug, p.Title))
	}
	return nil
}

// Post shows one post by slug.
func (a *App) Post(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: post <slug>")
		return errUsage
	}

	res, err := a.posts.GetBySlug(ctx, args[0])
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Could not load post:", res.Message)
		return nil
	}

	p := res.Data
	printlnFn(p.Title)
	if p.Excerpt != "" {
		printlnFn(p.Excerpt)
	}
	printlnFn(p.Content)
	return nil
}

// Sermons lists downloadable sermon resources.
func (a *App) Sermons(ctx context.Context) error {
	res, err := a.resources.List(ctx, &client.ListOptions{Type: "sermon"})
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Could not load sermons:", res.Message)
		return nil
	}

	for _, r := range res.Data {
		printlnFn(fmt.Sprintf("#%d  %s  %s", r.ID, r.Title, a.resources.FileURL(r.ID)))
	}
	return nil
}

// Download saves a resource file into a downloads/ subdirectory of the
// working directory.
func (a *App) Download(ctx context.Context, args []string) error {
	id, err := idArg(args, "download <id>")
	if err != nil {
		return err
	}

	dir, err := filex.EnsureSubDir("downloads")
	if err != nil {
		printlnFn("Could not prepare downloads directory:", err)
		return err
	}

	path := filepath.Join(dir, fmt.Sprintf("resource-%d", id))
	if err := a.resources.SaveTo(ctx, id, path); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("No such resource")
			return nil
		}
		reportFetchError(err)
		return err
	}

	printlnFn("Saved to", path)
	return nil
}

// Gallery lists photo collections and recent photos.
func (a *App) Gallery(ctx context.Context) error {
	cols, err := a.gallery.Collections(ctx, nil)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if cols.Success {
		for _, c := range cols.Data {
			printlnFn(fmt.Sprintf("[album #%d] %s (%d photos)", c.ID, c.Name, c.ItemCount))
		}
	}

	items, err := a.gallery.List(ctx, &client.ListOptions{Limit: 10})
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !items.Success {
		printlnFn("Could not load gallery:", items.Message)
		return nil
	}
	for _, it := range items.Data {
		printlnFn(fmt.Sprintf("#%d  %s  %s", it.ID, it.Title, a.gallery.ImageURL(it.ID)))
	}
	return nil
}
