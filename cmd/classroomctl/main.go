// Command classroomctl is a terminal client for the classroom portal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/pkg/client"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, app *app, args []string) error
}

var commands = []command{
	{"seats", "show the 33-seat layout", runSeats},
	{"student", "show the profile at a seat: student <seat>", runStudent},
	{"gallery", "list gallery items", runGallery},
	{"slides", "list slides", runSlides},
	{"dashboard", "admin dashboard: dashboard [-tab students|gallery|slides]", runDashboard},
	{"login", "enter admin mode: login -u <user> -p <password>", runLogin},
	{"logout", "leave admin mode", runLogout},
	{"status", "show whether the session is admin", runStatus},
	{"add-student", "add-student -name <name> -seat <n> [-photo url] [-hobbies text]", runAddStudent},
	{"edit-student", "edit-student -id <id> [-name] [-photo] [-hobbies]", runEditStudent},
	{"delete-student", "delete-student -id <id>", runDeleteStudent},
	{"add-gallery", "add-gallery -title <t> (-url <u> [-type image|video] | -file <path>) [-desc text]", runAddGallery},
	{"delete-gallery", "delete-gallery -id <id>", runDeleteGallery},
	{"export", "export -format csv|pdf -out <file>", runExport},
	{"user-create", "user-create -username <u> -password <p> (connects to the database directly)", runUserCreate},
}

type app struct {
	portal *client.Portal
	out    io.Writer
}

func main() {
	var (
		baseURL string
		jarPath string
		timeout time.Duration
	)
	home, _ := os.UserHomeDir()
	flag.StringVar(&baseURL, "api", envOr("CLASSROOM_API", "http://localhost:5000"), "API base URL")
	flag.StringVar(&jarPath, "session-file", filepath.Join(home, ".classroomctl-session"), "file keeping the session cookie between runs")
	flag.DurationVar(&timeout, "timeout", 15*time.Second, "HTTP client timeout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	if err := execute(baseURL, jarPath, timeout, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func execute(baseURL, jarPath string, timeout time.Duration, name string, args []string) error {
	var cmd *command
	for i := range commands {
		if commands[i].name == name {
			cmd = &commands[i]
			break
		}
	}
	if cmd == nil {
		return fmt.Errorf("unknown command %q", name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	jar, err := loadJar(jarPath, baseURL)
	if err != nil {
		return err
	}
	api, err := client.New(baseURL, client.WithTimeout(timeout), client.WithJar(jar))
	if err != nil {
		return err
	}
	notify := func(title, message string) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
	}
	a := &app{
		portal: client.NewPortal(api, client.NewQueryCache(0, zap.NewNop()), notify),
		out:    os.Stdout,
	}

	runErr := cmd.run(ctx, a, args)
	a.portal.Cache.Wait()
	if err := saveJar(jarPath, baseURL, jar); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: classroomctl [flags] <command> [args]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-15s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(os.Stderr, "\nflags:\n")
	flag.PrintDefaults()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
