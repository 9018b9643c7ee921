package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"launchkit/internal/api"
	"launchkit/internal/jobfile"
	"launchkit/internal/logger"
	"launchkit/internal/models"
	"launchkit/internal/platform"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	listen := flag.String("listen", "127.0.0.1", "Address to bind to")
	scope := flag.String("scope", "user", "Job scope: user (LaunchAgents) or system (LaunchDaemons)")
	out := flag.String("out", "", "Directory to write plists to (overrides -scope)")
	file := flag.String("file", "", "Generate the plist for this job definition and exit")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	logger.Init(*verbose)

	jobScope, err := models.ParseScope(*scope)
	if err != nil {
		logger.Error("invalid -scope", "error", err)
		os.Exit(2)
	}

	dir := *out
	if dir == "" {
		dir, err = platform.DefaultDir(jobScope)
		if err != nil {
			logger.Error("failed to resolve job directory", "scope", *scope, "error", err)
			os.Exit(1)
		}
	}
	store := platform.NewDirStore(dir)

	if *file != "" {
		if err := generate(store, *file); err != nil {
			logger.Error("failed to generate job", "file", *file, "error", err)
			os.Exit(1)
		}
		return
	}

	// Warn about security implications of non-localhost binding
	if *listen != "127.0.0.1" && *listen != "localhost" {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "WARNING: binding to a non-localhost address.")
		fmt.Fprintln(os.Stderr, "Anyone who can reach this address can write and delete job plists in")
		fmt.Fprintln(os.Stderr, "  "+dir)
		fmt.Fprintln(os.Stderr, "There is NO authentication. Use at your own risk.")
		fmt.Fprintln(os.Stderr, "")
	}

	router := api.NewRouter(store)

	addr := fmt.Sprintf("%s:%d", *listen, *port)
	logger.Info("starting server", "url", "http://"+addr, "dir", dir)

	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// generate builds one definition file into the store directory
func generate(store platform.JobStore, path string) error {
	job, err := jobfile.ParseFile(path)
	if err != nil {
		return err
	}

	summary, err := store.Save(job)
	if err != nil {
		return err
	}

	logger.Info("saved job", "label", summary.Label, "path", summary.Path)
	fmt.Println(summary.Path)
	return nil
}
