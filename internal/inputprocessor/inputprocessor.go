package inputprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"precis/internal/util"
)

// StdinInput reads the text from standard input.
const StdinInput = "-"

// MaxInputBytes caps what is read from a file, URL or stdin.
const MaxInputBytes = 10 << 20

var (
	ErrBinaryInput = errors.New("input looks like a binary file")
	ErrInputTooBig = fmt.Errorf("input larger than %d bytes", MaxInputBytes)
	ErrDirectory   = errors.New("input is a directory")
)

// Source tells where a Result came from.
type Source string

const (
	SourceFile  Source = "file"
	SourceURL   Source = "url"
	SourceStdin Source = "stdin"
	SourceRaw   Source = "raw"
)

// Result holds the extracted text and where it came from.
type Result struct {
	Body        string
	Source      Source
	ContentType string
	FilePath    string // Absolute path for SourceFile
	URL         string // Final URL for SourceURL
	Size        int64  // Bytes read before cleaning
}

// Processor turns a CLI argument into summarizable text.
type Processor interface {
	Process(ctx context.Context, input string) (Result, error)
}

// Option configures the default processor.
type Option func(*defaultProcessor)

// WithHTTPClient replaces the client used for URL inputs.
func WithHTTPClient(c *http.Client) Option {
	return func(p *defaultProcessor) { p.client = c }
}

// WithStdin replaces os.Stdin as the source for StdinInput.
func WithStdin(r io.Reader) Option {
	return func(p *defaultProcessor) { p.stdin = r }
}

// New creates the default processor: a path to an existing file is read, an http(s) URL is
// fetched, "-" reads stdin and anything else is taken as the text itself.
// HTML from files or URLs is reduced to its visible text.
func New(opts ...Option) Processor {
	p := &defaultProcessor{
		client: &http.Client{Timeout: 30 * time.Second},
		stdin:  os.Stdin,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type defaultProcessor struct {
	client *http.Client
	stdin  io.Reader
}

func (p *defaultProcessor) Process(ctx context.Context, input string) (Result, error) {
	if input == StdinInput {
		return p.fromStdin()
	}

	fi, err := os.Stat(input)
	if err == nil {
		if fi.IsDir() {
			return Result{}, fmt.Errorf("%w: %s", ErrDirectory, input)
		}
		return p.fromFile(input, fi)
	} else if !errors.Is(err, os.ErrNotExist) && !isNameError(err) {
		return Result{}, fmt.Errorf("failed to stat input '%s': %w", input, err)
	}

	if u, urlErr := url.Parse(input); urlErr == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return p.fromURL(ctx, u)
	}

	log.Debugf("Input is not a file or URL, treating %d bytes as raw text", len(input))
	return Result{
		Body:        input,
		Source:      SourceRaw,
		ContentType: "text/plain; charset=utf-8",
		Size:        int64(len(input)),
	}, nil
}

func (p *defaultProcessor) fromStdin() (Result, error) {
	data, err := readLimited(p.stdin)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read stdin: %w", err)
	}
	body, err := util.CleanFileContent(data, "stdin")
	if err != nil {
		return Result{}, err
	}
	log.Debugf("Read %d bytes from stdin", len(data))
	return Result{
		Body:        body,
		Source:      SourceStdin,
		ContentType: "text/plain; charset=utf-8",
		Size:        int64(len(data)),
	}, nil
}

func (p *defaultProcessor) fromFile(path string, fi os.FileInfo) (Result, error) {
	if fi.Size() > MaxInputBytes {
		return Result{}, fmt.Errorf("%w: %s", ErrInputTooBig, path)
	}

	binary, err := util.IsLikelyBinary(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to inspect file '%s': %w", path, err)
	}
	if binary {
		return Result{}, fmt.Errorf("%w: %s", ErrBinaryInput, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return Result{}, fmt.Errorf("permission denied reading file '%s': %w", path, err)
		}
		return Result{}, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	absPath, pathErr := filepath.Abs(path)
	if pathErr != nil {
		log.Warnf("Failed to get absolute path for '%s': %v. Using original path.", path, pathErr)
		absPath = path
	}

	ct := http.DetectContentType(data)
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".html" || ext == ".htm" {
		ct = "text/html; charset=utf-8"
	}

	body, err := toText(data, ct, absPath)
	if err != nil {
		return Result{}, err
	}

	log.Debugf("Read file %s (%d bytes, %s)", absPath, len(data), ct)
	return Result{
		Body:        body,
		Source:      SourceFile,
		ContentType: ct,
		FilePath:    absPath,
		Size:        int64(len(data)),
	}, nil
}

func (p *defaultProcessor) fromURL(ctx context.Context, u *url.URL) (Result, error) {
	input := u.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request for URL '%s': %w", input, err)
	}
	req.Header.Set("Accept", "text/html, text/plain;q=0.9, */*;q=0.5")

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch URL '%s': %w", input, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		hint, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{}, fmt.Errorf("failed to fetch URL '%s': status code %d %s - Body Hint: %s",
			input, resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(hint)))
	}

	data, err := readLimited(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response body from URL '%s': %w", input, err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
		log.Debugf("Content-Type header missing for URL '%s', detected as '%s'", input, ct)
	}

	body, err := toText(data, ct, input)
	if err != nil {
		return Result{}, err
	}

	log.Debugf("Fetched %s (%d bytes, %s)", input, len(data), ct)
	return Result{
		Body:        body,
		Source:      SourceURL,
		ContentType: ct,
		URL:         resp.Request.URL.String(),
		Size:        int64(len(data)),
	}, nil
}

// toText cleans the bytes and strips markup when the content type is HTML.
func toText(data []byte, contentType, src string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}

	switch {
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		text, err := ExtractText(strings.NewReader(string(data)))
		if err != nil {
			return "", fmt.Errorf("failed to parse HTML from '%s': %w", src, err)
		}
		return util.CleanFileContent([]byte(text), src)
	case strings.HasPrefix(mediaType, "text/"), mediaType == "application/json", mediaType == "application/xml":
		return util.CleanFileContent(data, src)
	default:
		return "", fmt.Errorf("%w: %s (%s)", ErrBinaryInput, src, contentType)
	}
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxInputBytes {
		return nil, ErrInputTooBig
	}
	return data, nil
}

// isNameError reports stat failures caused by text that cannot be a path at all,
// such as a long paragraph passed as the argument.
func isNameError(err error) bool {
	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		return false
	}
	msg := pathErr.Err.Error()
	return strings.Contains(msg, "file name too long") || strings.Contains(msg, "invalid argument") || strings.Contains(msg, "not a directory")
}

var _ Processor = (*defaultProcessor)(nil)
