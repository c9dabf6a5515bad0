package users

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/sharknado-db/sharknado/pkg/events"
	"github.com/sharknado-db/sharknado/pkg/types"
)

var (
	// ErrNotFound is returned when a username is not registered
	ErrNotFound = errors.New("user not found")

	// ErrConflict is returned when creating a username that exists
	ErrConflict = errors.New("user already exists")

	// ErrInvalidCredentials is returned on authentication failure
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrBadField is returned when updating an unknown user field
	ErrBadField = errors.New("unknown user field")
)

// FileName is the on-disk user directory, shared across databases on
// the same host
const FileName = "users.json"

// Directory is the persistent username -> account map. It is
// independent of the operation log: every mutation rewrites the whole
// file atomically.
type Directory struct {
	mu     sync.RWMutex
	path   string
	users  map[string]types.User
	broker *events.Broker
}

// Open loads the user directory from dir/users.json. A missing file is
// an empty directory. The broker is optional.
func Open(dir string, broker *events.Broker) (*Directory, error) {
	d := &Directory{
		path:   filepath.Join(dir, FileName),
		users:  make(map[string]types.User),
		broker: broker,
	}
	if err := d.load(); err != nil {
		return nil, err
	}
	return d, nil
}

// Create registers a new user. The password is stored as a bcrypt
// hash, never in the clear.
func (d *Directory) Create(username, password string, role types.Role) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if !role.Valid() {
		return fmt.Errorf("invalid role: %s", role)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.users[username]; exists {
		return fmt.Errorf("%w: %s", ErrConflict, username)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	d.users[username] = types.User{Username: username, Password: hash, Role: role}
	if err := d.save(); err != nil {
		delete(d.users, username)
		return err
	}

	d.publish(events.EventUserCreated, username)
	return nil
}

// Update changes one field of an existing user. Field is "password"
// or "role".
func (d *Directory) Update(username, field, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, exists := d.users[username]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}

	prev := u
	switch field {
	case "password":
		hash, err := hashPassword(value)
		if err != nil {
			return err
		}
		u.Password = hash
	case "role":
		role := types.Role(value)
		if !role.Valid() {
			return fmt.Errorf("invalid role: %s", value)
		}
		u.Role = role
	default:
		return fmt.Errorf("%w: %s", ErrBadField, field)
	}

	d.users[username] = u
	if err := d.save(); err != nil {
		d.users[username] = prev
		return err
	}

	d.publish(events.EventUserUpdated, username)
	return nil
}

// Delete removes a user
func (d *Directory) Delete(username string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, exists := d.users[username]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}

	delete(d.users, username)
	if err := d.save(); err != nil {
		d.users[username] = u
		return err
	}

	d.publish(events.EventUserDeleted, username)
	return nil
}

// Authenticate verifies a username/password pair and returns the
// user's role. Stored bcrypt hashes are verified as such; a directory
// written by an older deployment may still hold cleartext passwords,
// which are compared in constant time.
func (d *Directory) Authenticate(username, password string) (types.Role, error) {
	d.mu.RLock()
	u, exists := d.users[username]
	d.mu.RUnlock()

	if !exists {
		return "", ErrInvalidCredentials
	}

	if strings.HasPrefix(u.Password, "$2") {
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			return "", ErrInvalidCredentials
		}
		return u.Role, nil
	}

	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
		return "", ErrInvalidCredentials
	}
	return u.Role, nil
}

// List returns a snapshot of all users, sorted by username. The
// caller enforces admin-only access.
func (d *Directory) List() []types.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list := make([]types.User, 0, len(d.users))
	for _, u := range d.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list
}

// Reload re-reads the directory from disk, replacing in-memory state
func (d *Directory) Reload() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load()
}

// Path returns the backing file path
func (d *Directory) Path() string {
	return d.path
}

// load reads the file into memory. Callers hold the write lock (or
// have exclusive access during Open).
func (d *Directory) load() error {
	data, err := os.ReadFile(d.path)
	if os.IsNotExist(err) {
		d.users = make(map[string]types.User)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", d.path, err)
	}

	var raw map[string]types.User
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse %s: %w", d.path, err)
	}

	users := make(map[string]types.User, len(raw))
	for name, u := range raw {
		u.Username = name
		users[name] = u
	}
	d.users = users
	return nil
}

// save writes the whole directory to a temp file and renames it into
// place so a crash mid-write cannot corrupt the file
func (d *Directory) save() error {
	data, err := json.MarshalIndent(d.users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user directory: %w", err)
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", d.path, err)
	}
	return nil
}

func (d *Directory) publish(typ events.EventType, username string) {
	if d.broker == nil {
		return
	}
	d.broker.Publish(&events.Event{
		Type:     typ,
		Metadata: map[string]string{"username": username},
	})
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
