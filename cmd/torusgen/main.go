// Command torusgen loads or generates the cached heightfield, builds the
// terrain mesh and prints a summary.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"torus-rally/internal/config"
	"torus-rally/internal/fsutil"
	"torus-rally/internal/report"
	"torus-rally/internal/terrain"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func (l kvList) Map() (map[string]string, error) {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("override %q is not key=value", kv)
		}
		out[strings.TrimSpace(key)] = value
	}
	return out, nil
}

// configPath finds the -config flag ahead of flag.Parse.
func configPath(args []string, def string) string {
	for i, arg := range args {
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return def
}

func main() {
	fsys := fsutil.OSFileSystem{}

	// The settings file is read before the flags so flags override it.
	path := configPath(os.Args[1:], "torus.json")
	cfg, err := config.Load(fsys, path)
	if err != nil {
		log.Fatal(err)
	}

	flag.String("config", path, "JSON settings file (missing file uses defaults)")
	cfg.Bind(flag.CommandLine)
	var overrides kvList
	flag.Var(&overrides, "set", "setting override in key=value form (repeatable)")
	pgm := flag.String("pgm", "", "write a grayscale PGM of the heightfield to this path")
	hist := flag.String("hist", "", "write a height histogram PNG to this path")
	saveCfg := flag.String("save-config", "", "write the effective settings to this path")
	list := flag.Bool("list", false, "print the effective settings and exit")
	flag.Parse()

	m, err := overrides.Map()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Apply(m); err != nil {
		log.Fatalf("%v (known keys: %s)", err, strings.Join(config.Keys(), ", "))
	}

	if *list {
		for _, g := range cfg.Parameters().Groups {
			fmt.Println(g.Name)
			for _, p := range g.Params {
				fmt.Printf("  %-18s %s\n", p.Key, p.Value)
			}
		}
		return
	}
	if *saveCfg != "" {
		if err := cfg.Save(fsys, *saveCfg); err != nil {
			log.Fatal(err)
		}
	}

	p := &terrain.Pipeline{Config: cfg, FS: fsys}
	res, err := p.Run()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("heightfield %dx%d (%s) %s\n", res.Field.Rows(), res.Field.Cols(), res.Source, res.Stats)
	fmt.Printf("seams %.3f\n", report.MeasureSeams(res.Field).Ratio())
	fmt.Printf("mesh %s: %d vertices, %d indices, %d triangles\n",
		cfg.Mesh.Variant, res.Mesh.VertexCount(), len(res.Mesh.Indices), res.Mesh.TriangleCount())
	if res.CacheErr != nil {
		fmt.Fprintf(os.Stderr, "warning: heightfield not cached: %v\n", res.CacheErr)
	}

	if *pgm != "" {
		if err := report.WritePGM(fsys, *pgm, res.Field); err != nil {
			log.Fatal(err)
		}
	}
	if *hist != "" {
		title := fmt.Sprintf("%s seed %d", cfg.Noise.Algorithm, cfg.Noise.Seed)
		if err := report.WriteHistogram(fsys, *hist, res.Field, 32, title); err != nil {
			log.Fatal(err)
		}
	}
}
