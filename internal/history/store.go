package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/artuross/expression-calculator/internal/calculator"
	"github.com/artuross/expression-calculator/internal/defaults"
	"github.com/artuross/expression-calculator/internal/log/semconv"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/artuross/expression-calculator/internal/history"
)

var (
	ErrDuplicateExpression = errors.New("expression already exists")
	ErrEmpty               = errors.New("history is empty")
	ErrIncompleteRecord    = errors.New("record is incomplete")
)

type Record struct {
	ID        string    `json:"id"`
	Inorder   string    `json:"inorder"`
	Preorder  string    `json:"preorder"`
	Postorder string    `json:"postorder"`
	Binary    string    `json:"binary"`
	Decimal   string    `json:"decimal"`
	CreatedAt time.Time `json:"createdAt"`
}

type document struct {
	Records []Record `json:"records"`
}

// FileStore keeps calculated expressions in a single JSON file, keyed by the
// in-order form. A missing file is an empty store.
type FileStore struct {
	mu     sync.Mutex
	path   string
	now    func() time.Time
	newID  func() string
	tracer trace.Tracer
}

func NewFileStore(path string, options ...func(*FileStore)) *FileStore {
	store := FileStore{
		mu:     sync.Mutex{},
		path:   path,
		now:    defaults.Now,
		newID:  uuid.NewString,
		tracer: defaults.TracerProvider.Tracer(tracerName),
	}

	for _, apply := range options {
		apply(&store)
	}

	return &store
}

// Insert stores record unless a record with the same in-order form exists.
// ID and CreatedAt are assigned by the store.
func (s *FileStore) Insert(ctx context.Context, record Record) (*Record, error) {
	ctx, span := s.tracer.Start(ctx, "Insert", trace.WithAttributes(attribute.String(semconv.Inorder, record.Inorder)))
	defer span.End()

	if record.Inorder == "" || record.Preorder == "" || record.Postorder == "" || record.Binary == "" || record.Decimal == "" {
		return nil, ErrIncompleteRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	for _, existing := range doc.Records {
		if existing.Inorder == record.Inorder {
			return nil, fmt.Errorf("%q: %w", record.Inorder, ErrDuplicateExpression)
		}
	}

	record.ID = s.newID()
	record.CreatedAt = s.now().UTC()

	doc.Records = append(doc.Records, record)

	if err := s.write(doc); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str(semconv.RecordID, record.ID).
		Str(semconv.Inorder, record.Inorder).
		Msg("history record inserted")

	return &record, nil
}

// List returns all records in insertion order.
func (s *FileStore) List(ctx context.Context) ([]Record, error) {
	_, span := s.tracer.Start(ctx, "List")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	return doc.Records, nil
}

// DeleteLatest removes the most recently inserted record and returns it.
func (s *FileStore) DeleteLatest(ctx context.Context) (*Record, error) {
	ctx, span := s.tracer.Start(ctx, "DeleteLatest")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	if len(doc.Records) == 0 {
		return nil, ErrEmpty
	}

	latest := doc.Records[len(doc.Records)-1]
	doc.Records = doc.Records[:len(doc.Records)-1]

	if err := s.write(doc); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str(semconv.RecordID, latest.ID).Msg("history record deleted")

	return &latest, nil
}

func (s *FileStore) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &document{Records: make([]Record, 0)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal history file: %w", err)
	}

	if doc.Records == nil {
		doc.Records = make([]Record, 0)
	}

	return &doc, nil
}

func (s *FileStore) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temporary history file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temporary history file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save history file: %w", err)
	}

	return nil
}

func WithClock(now func() time.Time) func(*FileStore) {
	return func(s *FileStore) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) func(*FileStore) {
	return func(s *FileStore) {
		s.newID = newID
	}
}

func WithTracerProvider(tp trace.TracerProvider) func(*FileStore) {
	return func(s *FileStore) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// NewRecord copies the representations of a calculated expression into an
// unsaved record.
func NewRecord(result *calculator.Result) Record {
	return Record{
		Inorder:   result.Inorder,
		Preorder:  result.Preorder,
		Postorder: result.Postorder,
		Binary:    result.Binary,
		Decimal:   result.Decimal,
	}
}
