package journal

import (
	"slices"

	jsoniter "github.com/json-iterator/go"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

/***** Filter *****/

// Filter selects journal entries: an entry matches if its event type is one of the filter's event types
// (or the filter has none) AND every predicate matches a top-level string field of the payload.
type Filter struct {
	eventTypes []FilterEventTypeString
	predicates []FilterPredicate
}

func (f Filter) EventTypes() []FilterEventTypeString {
	return f.eventTypes
}

func (f Filter) Predicates() []FilterPredicate {
	return f.predicates
}

// Matches reports whether the storable event satisfies the filter.
func (f Filter) Matches(storableEvent StorableEvent) bool {
	if len(f.eventTypes) > 0 && !slices.Contains(f.eventTypes, storableEvent.EventType) {
		return false
	}

	for _, predicate := range f.predicates {
		field := jsoniter.ConfigFastest.Get(storableEvent.PayloadJSON, predicate.key)
		if field.ValueType() != jsoniter.StringValue || field.ToString() != predicate.val {
			return false
		}
	}

	return true
}

/***** FilterPredicate *****/

type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds a journal Filter. Only these combinations are possible:
//
//   - empty filter (MatchingAnyEvent)
//   - (eventType OR eventType...)
//   - (predicate AND predicate...)
//   - ((eventType OR eventType...) AND (predicate AND predicate...))
type FilterBuilder interface {
	// AnyEventTypeOf adds one or multiple event types, removing empty and duplicate ones.
	AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterItemBuilderLackingPredicates

	// AllPredicatesOf adds one or multiple predicates which must all match, removing partial ones.
	AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterBuilder

	// MatchingAnyEvent directly creates an empty Filter.
	MatchingAnyEvent() Filter
}

type FilterItemBuilderLackingPredicates interface {
	// AndAllPredicatesOf adds one or multiple predicates which must all match, removing partial ones.
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type CompletedFilterBuilder interface {
	// Finalize returns the Filter.
	Finalize() Filter
}

// filterBuilder implements all the interfaces of FilterBuilder
type filterBuilder struct {
	filter Filter
}

// BuildFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyEvent().
func BuildFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) AnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) FilterItemBuilderLackingPredicates {

	allEventTypes := append([]FilterEventTypeString{eventType}, eventTypes...)
	allEventTypes = slices.DeleteFunc(allEventTypes, func(et FilterEventTypeString) bool { return et == "" })
	slices.Sort(allEventTypes)

	fb.filter.eventTypes = slices.Compact(allEventTypes)

	return fb
}

func (fb filterBuilder) AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterBuilder {
	allPredicates := append([]FilterPredicate{predicate}, predicates...)

	fb.filter.predicates = slices.DeleteFunc(allPredicates, func(p FilterPredicate) bool {
		return p.key == "" || p.val == ""
	})

	return fb
}

func (fb filterBuilder) AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterBuilder {
	return fb.AllPredicatesOf(predicate, predicates...)
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return Filter{}
}

func (fb filterBuilder) Finalize() Filter {
	return fb.filter
}
