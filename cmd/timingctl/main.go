// timingctl inspects and moves timing scripts in and out of the store.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/avrillon/encore/internal/config"
	"github.com/avrillon/encore/internal/script"
	"github.com/avrillon/encore/internal/store"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: timingctl [-db path] <command> [args]

commands:
  list                    list subjects with stored scripts
  show <subject>          print a subject's entries
  export <subject> [file] write a subject's script as YAML (stdout by default)
  import <file>           load a YAML script, replacing the subject's sequence
  clear <subject>         delete a subject's script
`)
	os.Exit(2)
}

func main() {
	dbPath := flag.String("db", "", "database path (default: xdg data dir, or database_path from config)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	mgr, err := openStore(*dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer mgr.Close()

	switch flag.Arg(0) {
	case "list":
		cmdList(mgr)
	case "show":
		if flag.NArg() < 2 {
			usage()
		}
		cmdShow(mgr, flag.Arg(1))
	case "export":
		if flag.NArg() < 2 {
			usage()
		}
		cmdExport(mgr, flag.Arg(1), flag.Arg(2))
	case "import":
		if flag.NArg() < 2 {
			usage()
		}
		cmdImport(mgr, flag.Arg(1))
	case "clear":
		if flag.NArg() < 2 {
			usage()
		}
		if err := mgr.Clear(flag.Arg(1)); err != nil {
			log.Fatalf("clear: %v", err)
		}
		log.Printf("cleared %s", flag.Arg(1))
	default:
		usage()
	}
}

func openStore(dbPath string) (*store.Manager, error) {
	if dbPath != "" {
		return store.OpenAt(dbPath)
	}
	if cfg, err := config.Load(); err == nil && cfg.DatabasePath != "" {
		return store.OpenAt(cfg.DatabasePath)
	}
	return store.Open()
}

func cmdList(mgr *store.Manager) {
	subjects, err := mgr.Subjects()
	if err != nil {
		log.Fatalf("list: %v", err)
	}
	if len(subjects) == 0 {
		fmt.Println("no scripts stored")
		return
	}
	for _, id := range subjects {
		seq, err := mgr.GetSequence(id)
		if err != nil {
			log.Fatalf("load %s: %v", id, err)
		}
		age := ""
		if n := seq.Len(); n > 0 {
			if at := seq.Entry(n - 1).RecordedAt; !at.IsZero() {
				age = ", recorded " + humanize.Time(at)
			}
		}
		fmt.Printf("%s  (%d entries, %s total%s)\n",
			id, seq.Len(), seq.TotalDuration().Round(time.Second), age)
	}
}

func cmdShow(mgr *store.Manager, subjectID string) {
	seq, err := mgr.GetSequence(subjectID)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	if seq.Len() == 0 {
		fmt.Println("no entries")
		return
	}
	for _, e := range seq.Entries() {
		loop := ""
		if e.IsLoopPoint() {
			loop = fmt.Sprintf("  loop=%d", e.LoopMarker)
		}
		fmt.Printf("%3d  %-24s %8s  pos=%.1f%s\n",
			e.SequenceOrder, e.TargetID, e.Duration.Round(10*time.Millisecond), e.PositionHint, loop)
	}
	if total, ok, err := mgr.TotalDuration(subjectID); err == nil && ok {
		fmt.Printf("\ncomposite total: %s\n", total.Round(time.Second))
	}
}

func cmdExport(mgr *store.Manager, subjectID, path string) {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("create %s: %v", path, err)
		}
		defer f.Close()
		out = f
	}
	if err := script.Export(mgr, subjectID, out); err != nil {
		log.Fatalf("export: %v", err)
	}
}

func cmdImport(mgr *store.Manager, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	subjectID, n, err := script.Import(mgr, f)
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	log.Printf("imported %d entries for %s", n, subjectID)
}
