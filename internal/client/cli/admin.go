package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parishportal/parishportal/internal/client/gate"
	"github.com/parishportal/parishportal/internal/client/models"
	"github.com/parishportal/parishportal/internal/filex"
)

const eventTimeLayout = "2006-01-02 15:04"

// promptImage optionally attaches a base64-embedded image to a JSON
// payload. An empty path answer means no image.
func (a *App) promptImage(dataField, nameField *string) error {
	path, err := GetOptionalText(a.reader, "Image file path", os.Stdout)
	if err != nil || path == "" {
		return err
	}
	content, _, err := filex.ReadBase64(path)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	*dataField = content
	*nameField = filepath.Base(path)
	return nil
}

// AddEvent walks an admin through creating an event.
func (a *App) AddEvent(ctx context.Context) error {
	if !a.guard(gate.RequireAdmin, "/admin/events") {
		return nil
	}

	var in models.EventInput
	var err error
	if in.Title, err = GetSimpleText(a.reader, "Title", os.Stdout); err != nil {
		return err
	}
	start, err := GetSimpleText(a.reader, "Start (YYYY-MM-DD HH:MM)", os.Stdout)
	if err != nil {
		return err
	}
	if in.StartTime, err = time.ParseInLocation(eventTimeLayout, start, time.Local); err != nil {
		printlnFn("Invalid start time:", err)
		return err
	}
	if in.Location, err = GetOptionalText(a.reader, "Location", os.Stdout); err != nil {
		return err
	}
	if in.Category, err = GetOptionalText(a.reader, "Category", os.Stdout); err != nil {
		return err
	}
	if in.Description, err = GetOptionalText(a.reader, "Description", os.Stdout); err != nil {
		return err
	}
	if err = a.promptImage(&in.ImageData, &in.ImageName); err != nil {
		return err
	}

	res, err := a.events.Create(ctx, in)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Create failed:", res.Message)
		for _, fe := range res.Errors {
			printlnFn(fmt.Sprintf("  %s: %s", fe.Field, fe.Message))
		}
		return nil
	}

	printlnFn(fmt.Sprintf("Created event #%d", res.Data.ID))
	return nil
}

// EditEvent re-prompts every event field, defaulting to current values,
// and submits the full replacement payload.
func (a *App) EditEvent(ctx context.Context, args []string) error {
	if !a.guard(gate.RequireAdmin, "/admin/events") {
		return nil
	}

	id, err := idArg(args, "edit-event <id>")
	if err != nil {
		return err
	}

	cur, err := a.events.Get(ctx, id)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !cur.Success {
		printlnFn("Could not load event:", cur.Message)
		return nil
	}

	ev := cur.Data
	in := models.EventInput{
		Title:       ev.Title,
		Description: ev.Description,
		Category:    ev.Category,
		Location:    ev.Location,
		StartTime:   ev.StartTime,
		EndTime:     ev.EndTime,
		Featured:    ev.Featured,
	}

	prompts := []struct {
		label string
		field *string
	}{
		{"Title", &in.Title},
		{"Location", &in.Location},
		{"Category", &in.Category},
		{"Description", &in.Description},
	}
	for _, p := range prompts {
		answer, err := GetOptionalText(a.reader, fmt.Sprintf("%s [%s]", p.label, *p.field), os.Stdout)
		if err != nil {
			return err
		}
		if answer != "" {
			*p.field = answer
		}
	}

	start, err := GetOptionalText(a.reader,
		fmt.Sprintf("Start [%s]", in.StartTime.Format(eventTimeLayout)), os.Stdout)
	if err != nil {
		return err
	}
	if start != "" {
		if in.StartTime, err = time.ParseInLocation(eventTimeLayout, start, time.Local); err != nil {
			printlnFn("Invalid start time:", err)
			return err
		}
	}

	res, err := a.events.Update(ctx, id, in)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Update failed:", res.Message)
		return nil
	}

	printlnFn("Event updated")
	return nil
}

// DeleteEvent removes an event by id.
func (a *App) DeleteEvent(ctx context.Context, args []string) error {
	if !a.guard(gate.RequireAdmin, "/admin/events") {
		return nil
	}

	id, err := idArg(args, "del-event <id>")
	if err != nil {
		return err
	}

	env, err := a.events.Delete(ctx, id)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !env.Success {
		printlnFn("Delete failed:", env.Message)
		return nil
	}
	printlnFn("Event deleted")
	return nil
}

// AddPost walks an admin through creating a post.
func (a *App) AddPost(ctx context.Context) error {
	if !a.guard(gate.RequireAdmin, "/admin/posts") {
		return nil
	}

	var in models.PostInput
	var err error
	if in.Title, err = GetSimpleText(a.reader, "Title", os.Stdout); err != nil {
		return err
	}
	if in.Excerpt, err = GetOptionalText(a.reader, "Excerpt", os.Stdout); err != nil {
		return err
	}
	if in.Content, err = GetSimpleText(a.reader, "Content", os.Stdout); err != nil {
		return err
	}
	if in.Category, err = GetOptionalText(a.reader, "Category", os.Stdout); err != nil {
		return err
	}
	status, err := GetOptionalText(a.reader, "Status [draft]", os.Stdout)
	if err != nil {
		return err
	}
	in.Status = models.PostStatusDraft
	if status != "" {
		in.Status = models.PostStatus(status)
	}
	if err = a.promptImage(&in.ImageData, &in.ImageName); err != nil {
		return err
	}

	res, err := a.posts.Create(ctx, in)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Create failed:", res.Message)
		return nil
	}

	printlnFn(fmt.Sprintf("Created post %q (#%d)", res.Data.Slug, res.Data.ID))
	return nil
}

func (a *App) DeletePost(ctx context.Context, args []string) error {
	if !a.guard(gate.RequireAdmin, "/admin/posts") {
		return nil
	}

	id, err := idArg(args, "del-post <id>")
	if err != nil {
		return err
	}

	env, err := a.posts.Delete(ctx, id)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !env.Success {
		printlnFn("Delete failed:", env.Message)
		return nil
	}
	printlnFn("Post deleted")
	return nil
}

// AddMinistry walks an admin through creating a ministry.
func (a *App) AddMinistry(ctx context.Context) error {
	if !a.guard(gate.RequireAdmin, "/admin/ministries") {
		return nil
	}

	var in models.MinistryInput
	var err error
	if in.Name, err = GetSimpleText(a.reader, "Name", os.Stdout); err != nil {
		return err
	}
	if in.Leader, err = GetOptionalText(a.reader, "Leader", os.Stdout); err != nil {
		return err
	}
	if in.MeetingTime, err = GetOptionalText(a.reader, "Meeting time", os.Stdout); err != nil {
		return err
	}
	if in.Description, err = GetOptionalText(a.reader, "Description", os.Stdout); err != nil {
		return err
	}
	if err = a.promptImage(&in.ImageData, &in.ImageName); err != nil {
		return err
	}

	res, err := a.ministries.Create(ctx, in)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Create failed:", res.Message)
		return nil
	}

	printlnFn(fmt.Sprintf("Created ministry #%d", res.Data.ID))
	return nil
}

func (a *App) DeleteMinistry(ctx context.Context, args []string) error {
	if !a.guard(gate.RequireAdmin, "/admin/ministries") {
		return nil
	}

	id, err := idArg(args, "del-ministry <id>")
	if err != nil {
		return err
	}

	env, err := a.ministries.Delete(ctx, id)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !env.Success {
		printlnFn("Delete failed:", env.Message)
		return nil
	}
	printlnFn("Ministry deleted")
	return nil
}

// UploadPhoto uploads an image file to the gallery via a multipart form.
func (a *App) UploadPhoto(ctx context.Context, args []string) error {
	if !a.guard(gate.RequireAdmin, "/admin/gallery") {
		return nil
	}

	if len(args) != 1 {
		printlnFn("Usage: upload-photo <path>")
		return errUsage
	}
	path := args[0]

	title, err := GetOptionalText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	defer f.Close()

	res, err := a.gallery.Upload(ctx, title, 0, filepath.Base(path), f)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Upload failed:", res.Message)
		return nil
	}

	printlnFn(fmt.Sprintf("Uploaded photo #%d", res.Data.ID))
	return nil
}

// AddResource uploads a downloadable file (sermon, bulletin...).
func (a *App) AddResource(ctx context.Context, args []string) error {
	if !a.guard(gate.RequireAdmin, "/admin/resources") {
		return nil
	}

	if len(args) != 1 {
		printlnFn("Usage: add-resource <path>")
		return errUsage
	}
	path := args[0]

	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	rType, err := GetOptionalText(a.reader, "Type (sermon/bulletin/study/form)", os.Stdout)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	defer f.Close()

	res, err := a.resources.Upload(ctx, title, models.ResourceType(rType), filepath.Base(path), f)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !res.Success {
		printlnFn("Upload failed:", res.Message)
		return nil
	}

	printlnFn(fmt.Sprintf("Uploaded resource #%d", res.Data.ID))
	return nil
}

func (a *App) DeleteResource(ctx context.Context, args []string) error {
	if !a.guard(gate.RequireAdmin, "/admin/resources") {
		return nil
	}

	id, err := idArg(args, "del-resource <id>")
	if err != nil {
		return err
	}

	env, err := a.resources.Delete(ctx, id)
	if err != nil {
		reportFetchError(err)
		return err
	}
	if !env.Success {
		printlnFn("Delete failed:", env.Message)
		return nil
	}
	printlnFn("Resource deleted")
	return nil
}
