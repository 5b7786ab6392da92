package models

import "github.com/shopspring/decimal"

// Entity is an accounting target (customer, supplier, nominal account or
// tax code). EntityStatus and EntityValue are optional; EntityValue carries
// the rate for tax entities.
type Entity struct {
	EntityType   string           `yaml:"entityType" json:"entityType"`
	EntityCode   string           `yaml:"entityCode" json:"entityCode"`
	EntityName   string           `yaml:"entityName" json:"entityName"`
	EntityStatus *string          `yaml:"entityStatus,omitempty" json:"entityStatus,omitempty"`
	EntityValue  *decimal.Decimal `yaml:"entityValue,omitempty" json:"entityValue,omitempty"`
}

// IsTax reports whether the entity is a tax code.
func (e Entity) IsTax() bool {
	return e.EntityType == EntityTypeTax
}

// EntityKey identifies an entity by type and code.
type EntityKey struct {
	Type string
	Code string
}

// EntityLookup resolves posting descriptors to entities.
type EntityLookup map[EntityKey]Entity

// Find returns the entity for a (type, code) pair.
func (l EntityLookup) Find(entityType, entityCode string) (Entity, bool) {
	e, ok := l[EntityKey{Type: entityType, Code: entityCode}]
	return e, ok
}

// EntityList distinguishes a known entity table (possibly empty) from an
// unknown one. Callers that cannot supply entities pass UnknownEntities();
// an explicitly empty table blocks processing, an unknown one does not.
type EntityList struct {
	items []Entity
	known bool
}

// Entities wraps a known entity table.
func Entities(items []Entity) EntityList {
	return EntityList{items: items, known: true}
}

// UnknownEntities represents an entity table of unknown size.
func UnknownEntities() EntityList {
	return EntityList{}
}

// Known reports whether the entity table was supplied.
func (l EntityList) Known() bool {
	return l.known
}

// Count returns the number of entities, or -1 when the table is unknown.
func (l EntityList) Count() int {
	if !l.known {
		return -1
	}
	return len(l.items)
}

// Lookup builds a (type, code) index over the table. Later duplicates win.
func (l EntityList) Lookup() EntityLookup {
	lookup := make(EntityLookup, len(l.items))
	for _, e := range l.items {
		lookup[EntityKey{Type: e.EntityType, Code: e.EntityCode}] = e
	}
	return lookup
}
