package engine

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// MaxJobs caps the number of concurrent file scans.
const MaxJobs = 64

// Run は指定されたルートを走査し、マッチ結果と統計を含む Report を返します。
//
// 存在しないルートは Report.NotFound に記録され、他のルートの走査は継続します。
// 読み込めないファイルは Report.Errors に集約され、結果からは除外されます。
// エラーが返るのはオプションが不正な場合とコンテキストが取り消された場合のみです。
func Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := ValidateExcludes(opts.Excludes); err != nil {
		return nil, err
	}

	var (
		files    []string
		rootErrs []RootError
		fileErrs []FileError
	)
	for _, root := range opts.Roots {
		found, errs, err := Walk(ctx, root, opts.walkOptions())
		if err != nil {
			var re *RootError
			if errors.As(err, &re) {
				klog.V(1).Infof("root %s: %v", root, re.Err)
				rootErrs = append(rootErrs, *re)
				continue
			}
			return nil, err
		}
		files = append(files, found...)
		fileErrs = append(fileErrs, errs...)
	}
	files = dedupe(files)

	results, scanErrs, err := scanAll(ctx, files, opts)
	if err != nil {
		return nil, err
	}
	fileErrs = append(fileErrs, scanErrs...)
	return Aggregate(results, rootErrs, fileErrs), nil
}

// WalkAndScan expands a single root and scans every file it yields. The
// returned FileErrors cover both unreadable directories and unreadable files.
func WalkAndScan(ctx context.Context, root string, opts Options) ([]FileResult, []FileError, error) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	files, walkErrs, err := Walk(ctx, root, opts.walkOptions())
	if err != nil {
		return nil, nil, err
	}
	results, scanErrs, err := scanAll(ctx, files, opts)
	if err != nil {
		return nil, nil, err
	}
	return results, append(walkErrs, scanErrs...), nil
}

// dedupe drops repeated paths, which overlapping roots produce.
func dedupe(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := files[:0]
	for _, f := range files {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// scanAll scans files with up to opts.Jobs workers. Results keep the order
// of files so the outcome does not depend on scheduling.
func scanAll(ctx context.Context, files []string, opts Options) ([]FileResult, []FileError, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > MaxJobs {
		jobs = MaxJobs
	}
	if opts.Observer != nil {
		opts.Observer.FilesFound(len(files))
	}

	results := make([]*FileResult, len(files))
	errs := make([]*FileError, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := ScanFile(path, opts.Patterns)
			if opts.Observer != nil {
				opts.Observer.Advance()
			}
			if err != nil {
				var fe *FileError
				if !errors.As(err, &fe) {
					fe = &FileError{Path: path, Stage: "scan", Err: err}
				}
				klog.V(1).Infof("skip %s: %v", path, fe.Err)
				errs[i] = fe
				return nil
			}
			results[i] = &res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	out := make([]FileResult, 0, len(files))
	var fileErrs []FileError
	for i := range files {
		if results[i] != nil {
			out = append(out, *results[i])
		}
		if errs[i] != nil {
			fileErrs = append(fileErrs, *errs[i])
		}
	}
	return out, fileErrs, nil
}
