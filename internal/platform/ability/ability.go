// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ability implements the per-request authorization policy engine.

Given an authenticated principal and their role, it compiles an ordered set
of allow/deny rules and answers "may this user perform this action on this
resource instance" queries, including ownership-conditioned grants.

Architecture:

  - RuleSet: Compiled fresh per request after authentication, never persisted,
    discarded with the request. No shared mutable state across requests.
  - Subject: The canonical normalized shape every resource is reduced to
    before evaluation — an explicit tag set at the persistence-to-domain
    boundary, never inferred by reflection.
  - Precedence: A matching deny rule always wins over any allow rule,
    independent of rule declaration order. Absence of a matching allow rule
    defaults to deny; the engine never returns an error for "no rule matched".
*/
package ability

import "github.com/taibuivan/inkwell/internal/platform/sec"

// # Actions

// Action is a verb a principal may perform on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	// ActionManage is the wildcard verb covering every other action.
	ActionManage Action = "manage"
)

// # Resource Types

// ResourceType tags the kind of resource a rule or subject refers to.
type ResourceType string

const (
	ResourceArticle      ResourceType = "article"
	ResourceComment      ResourceType = "comment"
	ResourceReply        ResourceType = "reply"
	ResourceUser         ResourceType = "user"
	ResourceNotification ResourceType = "notification"
	ResourceStatistics   ResourceType = "statistics"

	// ResourceAll is the wildcard matching every resource type.
	ResourceAll ResourceType = "all"
)

// # Subjects

// Subject is the normalized, policy-checkable shape of a resource instance.
//
// # Normalization Contract
//
// Every identifier must already be in canonical string form, and OwnerID must
// be the single owning user ID regardless of how the storage layer names the
// column. Domain entities produce their Subject via an explicit method
// (e.g. [article.Article.Subject]) at construction time.
type Subject struct {
	ID      string
	OwnerID string
	Type    ResourceType
}

// TypeOnly returns a Subject representing "any instance of this type".
//
// Ownership-conditioned rules never match a type-only subject, since there
// is no instance to test the predicate against.
func TypeOnly(resourceType ResourceType) Subject {
	return Subject{Type: resourceType}
}

// IsTypeOnly reports whether the subject carries no concrete instance.
func (s Subject) IsTypeOnly() bool {
	return s.ID == "" && s.OwnerID == ""
}

// # Rules

// Effect is the outcome a rule contributes to the decision.
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

// Rule grants or revokes one action on one resource type.
type Rule struct {
	Effect   Effect
	Action   Action
	Resource ResourceType

	// OwnerOnly restricts the rule to instances owned by the acting user.
	OwnerOnly bool

	// Fields, when non-empty, restricts the rule to the named fields.
	Fields []string
}

// matchesAction reports whether the rule covers the requested action.
// A "manage" rule covers every action; a "manage" request only matches
// "manage" rules.
func (rule Rule) matchesAction(action Action) bool {
	return rule.Action == action || rule.Action == ActionManage
}

// matchesType reports whether the rule covers the subject's resource type.
func (rule Rule) matchesType(resourceType ResourceType) bool {
	return rule.Resource == resourceType || rule.Resource == ResourceAll
}

// matchesField reports whether the rule covers the named field.
// Rules without a field constraint cover every field.
func (rule Rule) matchesField(field string) bool {
	if field == "" || len(rule.Fields) == 0 {
		return true
	}
	for _, allowed := range rule.Fields {
		if allowed == field {
			return true
		}
	}
	return false
}

// # Rule Sets

// RuleSet is the compiled policy for one principal within one request.
type RuleSet struct {
	userID string
	role   sec.UserRole
	rules  []Rule
}

/*
Compile builds the rule set for a principal from their role.

Description: Grants are cumulative — every tier a role reaches adds rules on
top of the tiers below it, and no tier removes an earlier grant. The single
negative rule (editors and above may never hard-delete a user account) is an
explicit deny, which wins over any broader allow by precedence rather than
by position.

Tiers:
 1. Baseline (every authenticated user): read articles and comments; create
    comments and replies; update/delete their OWN comments and replies; read
    and update their own notifications.
 2. Writer: create articles; update/delete their OWN articles.
 3. Editor: manage any article and any comment; deny hard-deleting users.
 4. Admin: manage everything; read platform statistics.

Parameters:
  - userID: The acting principal's canonical ID.
  - role: The acting principal's role.

Returns:
  - *RuleSet: The compiled request-scoped policy.
*/
func Compile(userID string, role sec.UserRole) *RuleSet {
	rules := []Rule{
		// ── Tier 1: every authenticated user ─────────────────────────────
		{Effect: EffectAllow, Action: ActionRead, Resource: ResourceArticle},
		{Effect: EffectAllow, Action: ActionRead, Resource: ResourceComment},
		{Effect: EffectAllow, Action: ActionCreate, Resource: ResourceComment},
		{Effect: EffectAllow, Action: ActionCreate, Resource: ResourceReply},
		{Effect: EffectAllow, Action: ActionUpdate, Resource: ResourceComment, OwnerOnly: true},
		{Effect: EffectAllow, Action: ActionDelete, Resource: ResourceComment, OwnerOnly: true},
		{Effect: EffectAllow, Action: ActionUpdate, Resource: ResourceReply, OwnerOnly: true},
		{Effect: EffectAllow, Action: ActionDelete, Resource: ResourceReply, OwnerOnly: true},
		{Effect: EffectAllow, Action: ActionRead, Resource: ResourceNotification, OwnerOnly: true},
		{Effect: EffectAllow, Action: ActionUpdate, Resource: ResourceNotification, OwnerOnly: true},
	}

	// ── Tier 2: writers publish their own articles ───────────────────────
	if role.AtLeast(sec.RoleWriter) {
		rules = append(rules,
			Rule{Effect: EffectAllow, Action: ActionCreate, Resource: ResourceArticle},
			Rule{Effect: EffectAllow, Action: ActionUpdate, Resource: ResourceArticle, OwnerOnly: true},
			Rule{Effect: EffectAllow, Action: ActionDelete, Resource: ResourceArticle, OwnerOnly: true},
		)
	}

	// ── Tier 3: editors moderate all content ─────────────────────────────
	if role.AtLeast(sec.RoleEditor) {
		rules = append(rules,
			Rule{Effect: EffectAllow, Action: ActionManage, Resource: ResourceArticle},
			Rule{Effect: EffectAllow, Action: ActionManage, Resource: ResourceComment},
			Rule{Effect: EffectAllow, Action: ActionManage, Resource: ResourceReply},
			// Accounts are never hard-deleted, not even by admins.
			Rule{Effect: EffectDeny, Action: ActionDelete, Resource: ResourceUser},
		)
	}

	// ── Tier 4: admins ───────────────────────────────────────────────────
	if role == sec.RoleAdmin {
		rules = append(rules,
			Rule{Effect: EffectAllow, Action: ActionManage, Resource: ResourceAll},
			Rule{Effect: EffectAllow, Action: ActionRead, Resource: ResourceStatistics},
		)
	}

	return &RuleSet{userID: userID, role: role, rules: rules}
}

// UserID returns the principal the rule set was compiled for.
func (set *RuleSet) UserID() string { return set.userID }

// Role returns the role the rule set was compiled from.
func (set *RuleSet) Role() sec.UserRole { return set.role }

// Rules returns a copy of the compiled rules, primarily for diagnostics.
func (set *RuleSet) Rules() []Rule {
	out := make([]Rule, len(set.rules))
	copy(out, set.rules)
	return out
}

// # Decisions

// Can decides whether the principal may perform action on the subject.
//
// # Precedence
//
// The full rule list is scanned: any matching deny rejects immediately,
// regardless of where allow rules sit in the list. Ownership-conditioned
// allow rules match only concrete subjects owned by the acting principal.
func (set *RuleSet) Can(action Action, subject Subject) bool {
	return set.CanField(action, subject, "")
}

// CanType decides a coarse, type-level query ("any instance of this type").
func (set *RuleSet) CanType(action Action, resourceType ResourceType) bool {
	return set.Can(action, TypeOnly(resourceType))
}

// CanField decides like [RuleSet.Can] but additionally requires the matching
// rule's field constraint (if any) to include the named field.
func (set *RuleSet) CanField(action Action, subject Subject, field string) bool {
	allowed := false

	for _, rule := range set.rules {
		if !rule.matchesAction(action) || !rule.matchesType(subject.Type) || !rule.matchesField(field) {
			continue
		}

		// Deny rules are unconditional and short-circuit the decision.
		if rule.Effect == EffectDeny {
			return false
		}

		// Ownership predicate: requires a concrete, owned instance.
		if rule.OwnerOnly {
			if subject.IsTypeOnly() || subject.OwnerID != set.userID {
				continue
			}
		}

		allowed = true
	}

	return allowed
}
