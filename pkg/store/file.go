package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/votecloud/votecloud/pkg/errors"
)

// Data file names inside a FileStore directory.
const (
	ContactsFile  = "contacts.json"
	QuestionsFile = "questions.json"
	VotesFile     = "votes.json"
)

// FileStore keeps the roster, questions and votes as JSON documents in one
// directory. votes.json is an object keyed by employee ID.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// voteRecord is the on-disk form of a vote; the employee ID is the key of
// the enclosing object and the timestamp is in Unix milliseconds.
type voteRecord struct {
	VotedFor  string `json:"votedFor"`
	Timestamp int64  `json:"timestamp"`
}

// NewFileStore creates dir and seeds any missing data file with an empty
// document.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create data dir")
	}
	s := &FileStore{dir: dir}
	seeds := map[string]any{
		ContactsFile:  []Contact{},
		QuestionsFile: []Question{},
		VotesFile:     map[string]voteRecord{},
	}
	for name, empty := range seeds {
		if _, err := os.Stat(s.path(name)); err == nil {
			continue
		}
		if err := s.write(name, empty); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Dir returns the data directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Contacts(ctx context.Context) ([]Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var contacts []Contact
	if err := s.read(ContactsFile, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *FileStore) ReplaceContacts(ctx context.Context, contacts []Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contacts == nil {
		contacts = []Contact{}
	}
	return s.write(ContactsFile, contacts)
}

func (s *FileStore) Questions(ctx context.Context) ([]Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var questions []Question
	if err := s.read(QuestionsFile, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *FileStore) SaveQuestions(ctx context.Context, questions []Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if questions == nil {
		questions = []Question{}
	}
	return s.write(QuestionsFile, questions)
}

func (s *FileStore) Votes(ctx context.Context) ([]Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.readVotes()
	if err != nil {
		return nil, err
	}
	votes := make([]Vote, 0, len(records))
	for id, r := range records {
		votes = append(votes, Vote{
			EmployeeID: id,
			VotedFor:   r.VotedFor,
			Timestamp:  time.UnixMilli(r.Timestamp),
		})
	}
	sortVotes(votes)
	return votes, nil
}

func (s *FileStore) CastVote(ctx context.Context, employeeID, votedFor string) (Vote, error) {
	votedFor, err := checkBallot(employeeID, votedFor)
	if err != nil {
		return Vote{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var contacts []Contact
	if err := s.read(ContactsFile, &contacts); err != nil {
		return Vote{}, err
	}
	voter, ok := findVoter(contacts, employeeID)
	if !ok {
		return Vote{}, errors.New(errors.ErrCodeInvalidVoter, "invalid employee id %q", employeeID)
	}

	records, err := s.readVotes()
	if err != nil {
		return Vote{}, err
	}
	if _, voted := records[voter.EmployeeID]; voted {
		return Vote{}, errors.New(errors.ErrCodeAlreadyVoted, "you have already voted")
	}

	now := time.Now()
	records[voter.EmployeeID] = voteRecord{VotedFor: votedFor, Timestamp: now.UnixMilli()}
	if err := s.write(VotesFile, records); err != nil {
		return Vote{}, err
	}
	return Vote{EmployeeID: voter.EmployeeID, VotedFor: votedFor, Timestamp: time.UnixMilli(now.UnixMilli())}, nil
}

func (s *FileStore) ClearVotes(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(VotesFile, map[string]voteRecord{})
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *FileStore) readVotes() (map[string]voteRecord, error) {
	records := map[string]voteRecord{}
	if err := s.read(VotesFile, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = map[string]voteRecord{}
	}
	return records, nil
}

// read decodes a data file into v. A missing file leaves v untouched.
func (s *FileStore) read(name string, v any) error {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "read %s", name)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "parse %s", name)
	}
	return nil
}

// write replaces a data file atomically via a temp file and rename.
func (s *FileStore) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal %s", name)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", name)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", name)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", name)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", name)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
