package split

import (
	"fmt"
	"strings"
)

// Role names a party in a revenue split.
type Role string

const (
	RoleCreator  Role = "creator"
	RoleReferrer Role = "referrer"
	RoleDAO      Role = "dao"
	RolePlatform Role = "platform"
)

// Share allocates a whole percentage of the gross amount to a role. Shares
// are kept in declaration order because the last declared role absorbs the
// rounding remainder.
type Share struct {
	Role    Role
	Percent uint32
}

// Policy is a named ordered allocation of a gross amount across roles.
type Policy struct {
	Name   string
	Shares []Share
}

// Clone returns a copy of the policy with a duplicated share slice.
func (p Policy) Clone() Policy {
	clone := Policy{Name: p.Name}
	if len(p.Shares) > 0 {
		clone.Shares = append([]Share(nil), p.Shares...)
	}
	return clone
}

// validate checks the structural invariants enforced at catalog load:
// percentages sum to exactly 100, roles are unique and named, and any policy
// declaring a referrer share also declares a dao share to fold it into.
func (p Policy) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: policy name required", ErrMalformedCatalog)
	}
	if len(p.Shares) == 0 {
		return fmt.Errorf("%w: policy %q has no shares", ErrMalformedCatalog, p.Name)
	}
	var total uint64
	seen := make(map[Role]struct{}, len(p.Shares))
	for _, share := range p.Shares {
		role := Role(strings.TrimSpace(string(share.Role)))
		if role == "" {
			return fmt.Errorf("%w: policy %q has an unnamed role", ErrMalformedCatalog, p.Name)
		}
		if _, dup := seen[role]; dup {
			return fmt.Errorf("%w: policy %q repeats role %q", ErrMalformedCatalog, p.Name, role)
		}
		seen[role] = struct{}{}
		total += uint64(share.Percent)
	}
	if total != 100 {
		return fmt.Errorf("%w: policy %q shares sum to %d, want 100", ErrMalformedCatalog, p.Name, total)
	}
	if _, hasReferrer := seen[RoleReferrer]; hasReferrer {
		if _, hasDAO := seen[RoleDAO]; !hasDAO {
			return fmt.Errorf("%w: policy %q declares a referrer share with no dao fallback", ErrMalformedCatalog, p.Name)
		}
	}
	return nil
}

// Catalog holds the immutable set of split policies for the process. Built
// once at startup; safe for concurrent readers.
type Catalog struct {
	policies map[string]Policy
	names    []string
}

// NewCatalog validates every policy variant and returns the catalog. A
// malformed policy wraps ErrMalformedCatalog and must abort startup.
func NewCatalog(policies []Policy) (*Catalog, error) {
	if len(policies) == 0 {
		return nil, fmt.Errorf("%w: no policies defined", ErrMalformedCatalog)
	}
	byName := make(map[string]Policy, len(policies))
	names := make([]string, 0, len(policies))
	for _, policy := range policies {
		if err := policy.validate(); err != nil {
			return nil, err
		}
		name := strings.TrimSpace(policy.Name)
		if _, exists := byName[name]; exists {
			return nil, fmt.Errorf("%w: duplicate policy %q", ErrMalformedCatalog, name)
		}
		clone := policy.Clone()
		clone.Name = name
		byName[name] = clone
		names = append(names, name)
	}
	return &Catalog{policies: byName, names: names}, nil
}

// Get resolves a policy by name.
func (c *Catalog) Get(name string) (Policy, error) {
	if c == nil {
		return Policy{}, ErrUnknownPolicy
	}
	policy, ok := c.policies[strings.TrimSpace(name)]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return policy.Clone(), nil
}

// Names returns the policy names in declaration order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}
