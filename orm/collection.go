package orm

import (
	"encoding/json/v2"
)

// Collection indexes models by ID and remembers insertion order.
// Adding an ID again replaces the model in place
type Collection[MP Identifiable[ID], ID comparable] struct {
	itemsMap   map[ID]MP
	orderedIDs []ID
}

func NewOrderedCollection[
	MP Identifiable[ID],
	ID comparable,
](items []MP) *Collection[MP, ID] {
	coll := &Collection[MP, ID]{
		itemsMap:   make(map[ID]MP, len(items)),
		orderedIDs: make([]ID, 0, len(items)),
	}
	for _, item := range items {
		coll.Add(item)
	}
	return coll
}

func (c *Collection[MP, ID]) Len() int {
	return len(c.itemsMap)
}

func (c *Collection[MP, ID]) Has(id ID) bool {
	_, ok := c.itemsMap[id]
	return ok
}

func (c *Collection[MP, ID]) Find(id ID) (MP, bool) {
	p, ok := c.itemsMap[id]
	return p, ok
}

func (c *Collection[MP, ID]) Add(item MP) {
	id := item.GetID()
	if _, already := c.itemsMap[id]; !already {
		c.orderedIDs = append(c.orderedIDs, id)
	}
	c.itemsMap[id] = item
}

func (c *Collection[MP, ID]) IDs() []ID {
	return append([]ID(nil), c.orderedIDs...)
}

func (c *Collection[MP, ID]) Items() []MP {
	items := make([]MP, 0, len(c.orderedIDs))
	for _, id := range c.orderedIDs {
		items = append(items, c.itemsMap[id])
	}
	return items
}

func (c *Collection[MP, ID]) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.Items())
}
