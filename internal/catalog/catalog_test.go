package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return New([]Group{
		{Name: "Свет", Items: []Item{
			{Name: "600x", Stock: 2, Price: 3000},
			{Name: "60x", Stock: 3, Price: 900},
		}},
		{Name: "Связь", Items: []Item{
			{Name: "Рации", Stock: 2, Price: 100},
		}},
	})
}

func TestCatalog_Find_AcrossCategories(t *testing.T) {
	c := testCatalog()

	it, ok := c.Find("Рации")
	require.True(t, ok)
	assert.Equal(t, "Связь", it.Category)
	assert.Equal(t, 2, it.Stock)
	assert.Equal(t, 100, it.Price)

	_, ok = c.Find("не существует")
	assert.False(t, ok)
}

func TestCatalog_CategoriesKeepOrder(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, []string{"Свет", "Связь"}, c.Categories())

	items := c.Items("Свет")
	require.Len(t, items, 2)
	assert.Equal(t, "600x", items[0].Name)
	assert.Equal(t, "60x", items[1].Name)

	assert.Nil(t, c.Items("нет такой"))
}

func TestCatalog_HasCategory(t *testing.T) {
	c := testCatalog()
	assert.True(t, c.HasCategory("Связь"))
	assert.False(t, c.HasCategory("Готово"))
}

func TestDefault_ItemNamesUnique(t *testing.T) {
	c := Default()
	seen := map[string]bool{}
	for _, cat := range c.Categories() {
		for _, it := range c.Items(cat) {
			assert.False(t, seen[it.Name], "duplicate item %q", it.Name)
			seen[it.Name] = true
			assert.Positive(t, it.Stock)
			assert.GreaterOrEqual(t, it.Price, 0)
		}
	}
}
