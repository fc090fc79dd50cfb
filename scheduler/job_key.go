package scheduler

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cronbit/cronbit/queue"
)

// DefaultGroup is the group assigned to a JobKey when none is given.
const DefaultGroup = "default"

// Sep separates a JobKey's group from its name in its string form.
const Sep = "/"

// JobKey identifies a scheduled job. Keys are composed of a name and a
// group, and the name must be unique within the group.
type JobKey struct {
	name  string
	group string
}

var _ queue.Key = (*JobKey)(nil)

// NewJobKey returns a new JobKey in DefaultGroup.
func NewJobKey(name string) *JobKey {
	return NewJobKeyWithGroup(name, DefaultGroup)
}

// NewJobKeyWithGroup returns a new JobKey using the given name and group.
// An empty group falls back to DefaultGroup.
func NewJobKeyWithGroup(name, group string) *JobKey {
	if group == "" {
		group = DefaultGroup
	}
	return &JobKey{name: name, group: group}
}

// NewUniqueJobKey returns a new JobKey in DefaultGroup whose name is a
// randomly generated UUID, for callers that don't care about a stable name.
func NewUniqueJobKey() *JobKey {
	return NewJobKey(uuid.NewString())
}

// String renders the JobKey as "group/name".
func (k *JobKey) String() string {
	return fmt.Sprintf("%s%s%s", k.group, Sep, k.name)
}

// Equals reports whether that identifies the same job as k.
func (k *JobKey) Equals(that queue.Key) bool {
	o, ok := that.(*JobKey)
	return ok && o.name == k.name && o.group == k.group
}

// Name returns the name component of the JobKey.
func (k *JobKey) Name() string {
	return k.name
}

// Group returns the group component of the JobKey.
func (k *JobKey) Group() string {
	return k.group
}
