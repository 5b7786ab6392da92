package models

// Rule target types. The engine only processes rules targeting transactions.
const (
	TargetTypeTransaction = "Transaction"
)

// Rule statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Rule types, in ascending order of origin generality.
const (
	RuleTypeUser       = "user"
	RuleTypeAccountant = "accountant"
	RuleTypeFeedback   = "feedback"
	RuleTypeGlobal     = "global"
)

// Condition operations shared by the number, date and text comparators.
const (
	OpEqual              = "eq"
	OpLessThan           = "lt"
	OpGreaterThan        = "gt"
	OpLessThanOrEqual    = "lte"
	OpGreaterThanOrEqual = "gte"
	OpContains           = "contains"
	OpContainsWords      = "containsWords"
	OpDoesNotContain     = "doesNotContain"
)

// Entity types an action's posting instructions can reference.
const (
	EntityTypeCustomer = "customer"
	EntityTypeSupplier = "supplier"
	EntityTypeNominal  = "nominal"
	EntityTypeTax      = "tax"
)

// Audit record constants.
const (
	MatchFull                  = "full"
	ActionTypeAccountsPostings = "accountsPostings"
)

// CreatedByPrefix marks engine-generated postings with the rule that
// produced them.
const CreatedByPrefix = "auto: "
