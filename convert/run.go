// Package convert drives the conversion pipeline: input enumeration over
// files, directories and archives, theme resolution, export, bundling and
// result persistence.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/hidez8891/zip"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"anfc/anf/theme"
	"anfc/archive"
	"anfc/article"
	"anfc/bundle"
	"anfc/component"
	"anfc/exporter"
	"anfc/state"
	"anfc/workspace"
)

// articlePattern matches article body files inside directories and archives.
const articlePattern = "*.html"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	env.ThemeName = cmd.String("theme")

	store := theme.NewFileStore(env.Cfg.Document.Themes.Directory)
	thm, err := theme.Resolve(store, env.ThemeName, env.Cfg.Document.Themes.Active)
	if err != nil {
		return fmt.Errorf("unable to resolve theme: %w", err)
	}
	if err := thm.Validate(); err != nil {
		return fmt.Errorf("theme %q failed validation: %w", thm.Name, err)
	}
	if err := thm.ValidateOverrides(component.DefaultSpecTokens); err != nil {
		return fmt.Errorf("theme %q carries invalid spec overrides: %w", thm.Name, err)
	}
	log.Debug("Theme resolved", zap.String("theme", thm.Name))

	ws, err := workspace.Open(env.Cfg.Workspace.Path)
	if err != nil {
		return fmt.Errorf("unable to open workspace: %w", err)
	}
	defer func() {
		if er := ws.Close(); er != nil && err == nil {
			err = fmt.Errorf("unable to close workspace: %w", er)
		}
	}()

	p := &processor{
		env:       env,
		theme:     thm,
		ws:        ws,
		bundleZip: cmd.Bool("bundle-zip") || env.Cfg.Document.Bundle.Zip,
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return p.process(ctx, src, dst, log)
}

// processor carries conversion state shared across one batch.
type processor struct {
	env       *state.LocalEnv
	theme     *theme.Theme
	ws        *workspace.Workspace
	bundleZip bool
}

// process determines the input type (directory, archive, or single file) and
// dispatches accordingly.
func (p *processor) process(ctx context.Context, src, dst string, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if fi.Mode().IsDir() {
		return p.processDir(ctx, src, dst, log)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	if isArchiveFile(src) {
		return p.processArchive(ctx, src, dst, log)
	}
	return p.processArticle(ctx, src, filepath.Base(src), dst, log)
}

// processDir walks the directory tree converting every article body file.
func (p *processor) processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, werr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if werr != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(werr))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if matched, _ := filepath.Match(articlePattern, filepath.Base(path)); !matched {
			return nil
		}

		count++
		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := p.processArticle(ctx, path, src, dst, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processArchive extracts each article with its sidecar into a scratch
// directory and converts from there.
func (p *processor) processArchive(ctx context.Context, path, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	scratch, err := os.MkdirTemp("", "anfc-archive.*")
	if err != nil {
		return fmt.Errorf("unable to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	// sidecars first so article loading finds them
	sidecars := map[string]bool{}
	if err := archive.Walk(path, "*.yaml", extractTo(scratch, sidecars)); err != nil {
		return err
	}
	if err := archive.Walk(path, "*.yml", extractTo(scratch, sidecars)); err != nil {
		return err
	}
	if err := archive.Walk(path, "*.json", extractTo(scratch, sidecars)); err != nil {
		return err
	}

	err = archive.Walk(path, articlePattern, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		local, err := extractFile(scratch, f)
		if err != nil {
			log.Error("Unable to extract file from archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		count++
		if err := p.processArticle(ctx, local, f.FileHeader.Name, dst, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
	return err
}

func extractTo(scratch string, seen map[string]bool) archive.WalkFunc {
	return func(_ string, f *zip.File) error {
		if seen[f.FileHeader.Name] {
			return nil
		}
		seen[f.FileHeader.Name] = true
		_, err := extractFile(scratch, f)
		return err
	}
}

func extractFile(scratch string, f *zip.File) (string, error) {
	local := filepath.Join(scratch, filepath.FromSlash(f.FileHeader.Name))
	if err := os.MkdirAll(filepath.Dir(local), 0755); err != nil {
		return "", err
	}
	r, err := f.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()
	out, err := os.Create(local)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", err
	}
	return local, out.Close()
}

// processArticle converts a single article. "src" is the source path
// relative to the original input and determines the output location, "path"
// is where the body file actually resides.
func (p *processor) processArticle(ctx context.Context, path, src, dst string, log *zap.Logger) (rerr error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := p.env

	var outputName, refID string

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		// graphic libraries used for cover generation are not always well
		// behaved, a batch must survive a single bad article
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("ref_id", refID))
		}
	}(time.Now())

	art, err := article.Load(path)
	if err != nil {
		return fmt.Errorf("unable to load article (%s): %w", src, err)
	}
	refID = art.Identifier
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("source-%s/%s", refID, filepath.Base(path)), path)
	}
	if art.Language == "" {
		art.Language = env.Cfg.Site.Language
	}

	exp := exporter.New(p.theme, log)
	exp.Origin = env.Cfg.Site.Origin
	exp.HTMLEnabled = env.Cfg.Document.EnableHTML
	exp.Workspace = p.ws

	doc, err := exp.Export(art)
	if err != nil {
		return fmt.Errorf("unable to export article (%s): %w", src, err)
	}

	b := bundle.New(log, filepath.Dir(path))
	b.Collect(doc)
	if env.Cfg.Document.Bundle.Cover.Generate {
		if err := b.EnsureCover(doc, env.DefaultCoverSVG, env.Cfg.Document.Bundle.Cover.Width, env.Cfg.Document.Bundle.Cover.Height); err != nil {
			log.Warn("Unable to generate fallback cover", zap.Error(err))
		}
	}

	outputName = buildOutputPath(art, src, dst, p.bundleZip, env)

	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output already exists: %s", outputName)
		}
		log.Warn("Overwriting existing output", zap.String("path", outputName))
		if err = os.RemoveAll(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if p.bundleZip {
		err = b.WriteZip(doc, outputName)
	} else {
		err = b.WriteDir(doc, outputName)
	}
	if err != nil {
		return fmt.Errorf("unable to write bundle: %w", err)
	}

	data, err := doc.Serialize()
	if err != nil {
		return err
	}
	if err := p.ws.WriteJSON(art.Identifier, data); err != nil {
		log.Warn("Unable to persist conversion result", zap.Error(err))
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("result-%s/article.json", refID), data)
		env.Rpt.StoreData(fmt.Sprintf("result-%s/outline.txt", refID), []byte(doc.String()))
	}
	return nil
}

// isArchiveFile sniffs the zip signature.
func isArchiveFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	var sig [4]byte
	if _, err := io.ReadFull(f, sig[:]); err != nil {
		return false
	}
	return sig[0] == 'P' && sig[1] == 'K' && sig[2] == 3 && sig[3] == 4
}
