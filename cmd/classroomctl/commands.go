package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/classroom"
	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/repository"
	"github.com/noah-isme/classroom-portal/internal/service"
	"github.com/noah-isme/classroom-portal/pkg/config"
	"github.com/noah-isme/classroom-portal/pkg/database"
)

func runSeats(ctx context.Context, a *app, _ []string) error {
	students, _, err := a.portal.Students(ctx)
	if err != nil {
		return err
	}
	return classroom.RenderSeats(a.out, classroom.BuildSeats(students))
}

func runStudent(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: student <seat>")
	}
	seat, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid seat %q", args[0])
	}
	students, _, err := a.portal.Students(ctx)
	if err != nil {
		return err
	}
	id, ok := classroom.Select(classroom.BuildSeats(students), seat)
	if !ok {
		fmt.Fprintf(a.out, "Seat %d is empty\n", seat)
		return nil
	}
	student, _, err := a.portal.Student(ctx, id)
	if err != nil {
		return err
	}
	status, _, err := a.portal.AuthStatus(ctx)
	if err != nil {
		return err
	}
	return classroom.RenderProfile(a.out, classroom.NewProfileView(*student, status.IsAdmin))
}

func runGallery(ctx context.Context, a *app, _ []string) error {
	items, _, err := a.portal.Gallery(ctx)
	if err != nil {
		return err
	}
	status, _, err := a.portal.AuthStatus(ctx)
	if err != nil {
		return err
	}
	return classroom.RenderGallery(a.out, classroom.BuildGallery(items, status.IsAdmin))
}

func runSlides(ctx context.Context, a *app, _ []string) error {
	slides, _, err := a.portal.Slides(ctx)
	if err != nil {
		return err
	}
	return classroom.RenderSlides(a.out, slides)
}

func runDashboard(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	tab := fs.String("tab", string(classroom.TabStudents), "tab to open")
	if err := fs.Parse(args); err != nil {
		return err
	}
	status, _, err := a.portal.AuthStatus(ctx)
	if err != nil {
		return err
	}
	if !status.IsAdmin {
		return errors.New("the dashboard requires admin mode; run login first")
	}

	board := classroom.NewDashboard()
	if err := board.Select(classroom.Tab(*tab)); err != nil {
		return err
	}
	students, _, err := a.portal.Students(ctx)
	if err != nil {
		return err
	}
	items, _, err := a.portal.Gallery(ctx)
	if err != nil {
		return err
	}
	slides, _, err := a.portal.Slides(ctx)
	if err != nil {
		return err
	}
	return classroom.RenderDashboard(a.out, board, students, classroom.BuildGallery(items, true), slides)
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := a.portal.Login(ctx, *username, *password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Admin mode enabled")
	return nil
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.portal.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func runStatus(ctx context.Context, a *app, _ []string) error {
	status, _, err := a.portal.AuthStatus(ctx)
	if err != nil {
		return err
	}
	if status.IsAdmin {
		fmt.Fprintln(a.out, "admin")
		return nil
	}
	fmt.Fprintln(a.out, "visitor")
	return nil
}

func runAddStudent(ctx context.Context, a *app, args []string) error {
	form := classroom.NewStudentForm()
	fs := flag.NewFlagSet("add-student", flag.ContinueOnError)
	fs.StringVar(&form.Name, "name", "", "student name")
	fs.IntVar(&form.SeatNumber, "seat", form.SeatNumber, "seat number (1-33)")
	fs.StringVar(&form.PhotoURL, "photo", "", "photo URL")
	fs.StringVar(&form.Hobbies, "hobbies", "", "hobbies")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req, err := form.CreateRequest()
	if err != nil {
		return err
	}
	student, err := a.portal.CreateStudent(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s at seat %d (%s)\n", student.Name, student.SeatNumber, student.ID)
	return nil
}

func runEditStudent(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("edit-student", flag.ContinueOnError)
	id := fs.String("id", "", "student id")
	name := fs.String("name", "", "new name")
	photo := fs.String("photo", "", "new photo URL")
	hobbies := fs.String("hobbies", "", "new hobbies")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}
	student, _, err := a.portal.Student(ctx, *id)
	if err != nil {
		return err
	}

	buf := classroom.NewProfileView(*student, true).Edit()
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			buf.Name = *name
		case "photo":
			buf.PhotoURL = *photo
		case "hobbies":
			buf.Hobbies = *hobbies
		}
	})
	if !buf.Dirty() {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}
	updated, err := a.portal.UpdateStudent(ctx, buf.StudentID(), buf.Patch())
	if err != nil {
		return err
	}
	return classroom.RenderProfile(a.out, classroom.NewProfileView(*updated, true))
}

func runDeleteStudent(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("delete-student", flag.ContinueOnError)
	id := fs.String("id", "", "student id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.portal.DeleteStudent(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Student deleted")
	return nil
}

func runAddGallery(ctx context.Context, a *app, args []string) error {
	var form classroom.GalleryForm
	fs := flag.NewFlagSet("add-gallery", flag.ContinueOnError)
	fs.StringVar(&form.Title, "title", "", "title")
	fs.StringVar(&form.Description, "desc", "", "description")
	mediaURL := fs.String("url", "", "media URL")
	mediaType := fs.String("type", string(models.MediaTypeImage), "media type for URL mode")
	file := fs.String("file", "", "file to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// selecting a source replaces the other; -url wins when both are set
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			form.UseURL(*mediaURL, models.MediaType(*mediaType))
		case "file":
			form.UseFile(*file)
		}
	})
	if err := form.Validate(); err != nil {
		return err
	}

	var (
		item *models.GalleryItem
		err  error
	)
	switch src := form.Source.(type) {
	case classroom.ByURL:
		req, _ := form.URLRequest()
		item, err = a.portal.CreateGalleryItem(ctx, req)
	case classroom.ByUpload:
		item, err = uploadFile(ctx, a, form, src.Path)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s %q -> %s\n", item.MediaType, item.Title, item.MediaURL)
	return nil
}

func uploadFile(ctx context.Context, a *app, form classroom.GalleryForm, path string) (*models.GalleryItem, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	meta := dto.UploadGalleryItemRequest{Title: form.Title, Description: form.Description}
	return a.portal.UploadGalleryItem(ctx, meta, filepath.Base(path), mtype.String(), f)
}

func runDeleteGallery(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("delete-gallery", flag.ContinueOnError)
	id := fs.String("id", "", "gallery item id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.portal.DeleteGalleryItem(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Gallery item deleted")
	return nil
}

func runExport(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.String("format", service.ExportFormatCSV, "csv or pdf")
	out := fs.String("out", "", "output file (defaults to seating.<format>)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	data, err := a.portal.API.ExportSeating(ctx, *format)
	if err != nil {
		return err
	}
	target := *out
	if target == "" {
		target = "seating." + *format
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %s (%d bytes)\n", target, len(data))
	return nil
}

// runUserCreate stores an account directly in the database. The HTTP API has no user routes.
func runUserCreate(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("user-create", flag.ContinueOnError)
	var req dto.CreateUserRequest
	fs.StringVar(&req.Username, "username", "", "username")
	fs.StringVar(&req.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	users := service.NewUserService(repository.NewUserRepository(db), service.NewValidator(), zap.NewNop())
	user, err := users.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created user %s (%s)\n", user.Username, user.ID)
	return nil
}
