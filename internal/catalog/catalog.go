package catalog

// Item is one catalog position: how many units the park owns and the rental
// price per unit per day. Immutable for the process lifetime.
type Item struct {
	Name     string
	Category string
	Stock    int
	Price    int
}

// Group is an ordered category of items, in keyboard order.
type Group struct {
	Name  string
	Items []Item
}

// Catalog is the static equipment reference. Constructed once and injected;
// never mutated afterwards.
type Catalog struct {
	groups []Group
	byName map[string]Item
}

func New(groups []Group) *Catalog {
	c := &Catalog{
		groups: groups,
		byName: make(map[string]Item),
	}
	for gi := range groups {
		for ii := range groups[gi].Items {
			it := groups[gi].Items[ii]
			it.Category = groups[gi].Name
			c.groups[gi].Items[ii] = it
			c.byName[it.Name] = it
		}
	}
	return c
}

// Categories returns category names in display order.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.groups))
	for _, g := range c.groups {
		names = append(names, g.Name)
	}
	return names
}

func (c *Catalog) HasCategory(name string) bool {
	for _, g := range c.groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// Items returns the items of one category in display order, nil for an
// unknown category.
func (c *Catalog) Items(category string) []Item {
	for _, g := range c.groups {
		if g.Name == category {
			return g.Items
		}
	}
	return nil
}

// Find looks an item up by name across all categories.
func (c *Catalog) Find(name string) (Item, bool) {
	it, ok := c.byName[name]
	return it, ok
}

// Default is the rental park inventory.
func Default() *Catalog {
	return New([]Group{
		{Name: "Приборы", Items: []Item{
			{Name: "1200x", Stock: 1, Price: 6000},
			{Name: "600c", Stock: 1, Price: 4000},
			{Name: "600x", Stock: 2, Price: 3000},
			{Name: "300x", Stock: 2, Price: 2100},
			{Name: "60x", Stock: 3, Price: 900},
			{Name: "F22c", Stock: 3, Price: 2100},
			{Name: "INFINIBAR 12", Stock: 3, Price: 1050},
			{Name: "INFINIBAR 6", Stock: 1, Price: 810},
			{Name: "MC Pro", Stock: 2, Price: 600},
			{Name: "INFINIMAT 4", Stock: 1, Price: 3000},
			{Name: "Dedolight", Stock: 1, Price: 300},
			{Name: "600 х/с за 2100", Stock: 3, Price: 2100},
		}},
		{Name: "Софтбоксы, насадки", Items: []Item{
			{Name: "соты INFINIBAR 12", Stock: 2, Price: 390},
			{Name: "софтбокс INFINIBAR 12", Stock: 2, Price: 600},
			{Name: "Lightdome 150", Stock: 1, Price: 750},
			{Name: "Lightdome 90", Stock: 1, Price: 600},
			{Name: "Lantern 90", Stock: 1, Price: 600},
			{Name: "Lantern F22", Stock: 1, Price: 390},
			{Name: "Рефлекторы 1200", Stock: 1, Price: 810},
			{Name: "Softbox 60x", Stock: 2, Price: 300},
		}},
		{Name: "Плоскость", Items: []Item{
			{Name: "Фрост рама", Stock: 4, Price: 200},
			{Name: "Отражатель", Stock: 1, Price: 200},
		}},
		{Name: "Генератор, коммутация и тд.", Items: []Item{
			{Name: "Генератор 8кв", Stock: 1, Price: 7500},
			{Name: "Генератор 2кв", Stock: 1, Price: 3000},
			{Name: "Кабло 10м по 5шт", Stock: 2, Price: 750},
			{Name: "Кабло 10м по 1шт", Stock: 5, Price: 150},
			{Name: "Страховка 50см", Stock: 10, Price: 30},
			{Name: "V-mount", Stock: 2, Price: 360},
			{Name: "Дым машина", Stock: 1, Price: 1000},
			{Name: "Фал 30м", Stock: 2, Price: 200},
			{Name: "Фал 20м", Stock: 2, Price: 150},
			{Name: "Бабкина сумка", Stock: 1, Price: 1},
		}},
		{Name: "Связь", Items: []Item{
			{Name: "Интеркомы 6шт", Stock: 1, Price: 5000},
			{Name: "Интеркомы 4шт", Stock: 1, Price: 3300},
			{Name: "Интеркомы 2шт", Stock: 1, Price: 1650},
			{Name: "Рации", Stock: 2, Price: 100},
		}},
	})
}
