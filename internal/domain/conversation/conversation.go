package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role of one turn in the mentor dialogue.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one exchange unit. IDs are opaque and unique within the session;
// they are never derived from content since two turns may read identically.
type Turn struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Conversation holds the ordered, append-only turn log for one session plus
// the most recently analyzed snippet. Mutations are interleaved async
// completions from one UI session, so a single mutex is enough.
type Conversation struct {
	mu          sync.Mutex
	turns       []Turn
	codeContext string
	epoch       uint64
}

func New() *Conversation {
	return &Conversation{}
}

// Append adds a turn to the end of the log. Never reorders, never
// deduplicates.
func (c *Conversation) Append(role Role, content string, at time.Time) Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.append(role, content, at)
}

func (c *Conversation) append(role Role, content string, at time.Time) Turn {
	t := Turn{ID: uuid.New().String(), Role: role, Content: content, At: at}
	c.turns = append(c.turns, t)
	return t
}

// AppendIfCurrent appends only when no Reset happened since the given epoch
// was observed. This is the stale-response guard: a completion that raced a
// clear action must not resurrect the cleared conversation.
func (c *Conversation) AppendIfCurrent(epoch uint64, role Role, content string, at time.Time) (Turn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return Turn{}, false
	}
	return c.append(role, content, at), true
}

// Epoch returns the current reset generation. Callers snapshot it before a
// network call and pass it to AppendIfCurrent afterwards.
func (c *Conversation) Epoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// Reset clears the turn log and the cached code context atomically and
// invalidates any epoch handed out before the call.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = nil
	c.codeContext = ""
	c.epoch++
}

// Turns returns a copy of the log in append order.
func (c *Conversation) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// SetCodeContext records the most recently analyzed snippet so chat prompts
// can reference "the code" without the user repasting it.
func (c *Conversation) SetCodeContext(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codeContext = code
}

// SetCodeContextIfCurrent records the snippet only when no Reset happened
// since the epoch was observed, mirroring AppendIfCurrent.
func (c *Conversation) SetCodeContextIfCurrent(epoch uint64, code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return false
	}
	c.codeContext = code
	return true
}

// CodeContext returns the current snippet, possibly empty.
func (c *Conversation) CodeContext() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codeContext
}

// Len reports the number of turns.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}
