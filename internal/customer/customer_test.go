package customer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_References(t *testing.T) {
	f := NewFactory()
	a := f.NewIndividual("Fontainer", "30 rue des Tulipes, 62300 Lens", 10, "Nathan", GenderMale)
	b := f.NewCompany("Peuplier and Co.", "42 boulevard des Marguerites, 62300 Lens", 100, "Francis Chêne")

	assert.Equal(t, 0, a.Reference())
	assert.Equal(t, 1, b.Reference())
	assert.Equal(t, KindIndividual, a.Kind())
	assert.Equal(t, KindCompany, b.Kind())
	assert.Equal(t, "Francis Chêne", b.Contact())
}

func TestCustomer_LoyaltyPointsClamped(t *testing.T) {
	c := NewFactory().NewIndividual("Caron", "Lens", -5, "Jean", GenderMale)
	assert.Equal(t, 0, c.LoyaltyPoints())

	c.SetLoyaltyPoints(42)
	assert.Equal(t, 42, c.LoyaltyPoints())
	c.SetLoyaltyPoints(-1)
	assert.Equal(t, 0, c.LoyaltyPoints())
}

func TestCustomer_Discount(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 0},
		{99, 0},
		{100, 5},
		{499, 5},
		{500, 10},
		{999, 10},
		{1000, 15},
		{5000, 15},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d points", tt.points), func(t *testing.T) {
			c := NewFactory().NewCompany("Co", "addr", tt.points, "contact")
			assert.Equal(t, tt.want, c.Discount())
		})
	}
}

func TestCustomer_String(t *testing.T) {
	f := NewFactory()
	ind := f.NewIndividual("Dubusse", "30 rue des Tulipes", 20, "Lucas", GenderMale)
	co := f.NewCompany("Charme and Co.", "22 impasse des Lilas", 110, "Jean Condotta")

	for _, want := range []string{"Reference:      0", "20", "Dubusse", "30 rue des Tulipes", "Lucas", "male"} {
		assert.Contains(t, ind.String(), want)
	}
	assert.Contains(t, co.String(), "Jean Condotta")
	assert.NotContains(t, co.String(), "First name")
}

func TestDirectory(t *testing.T) {
	f := NewFactory()
	d := NewDirectory("Carnet 2022")
	require.True(t, d.IsEmpty())

	a := f.NewIndividual("A", "a", 0, "a", GenderFemale)
	b := f.NewCompany("B", "b", 0, "b")
	c := f.NewIndividual("C", "c", 0, "c", GenderMale)
	d.Add(a)
	d.Add(b)
	d.Add(c)
	d.Add(a)
	d.Add(nil)

	assert.Equal(t, 3, d.Count())
	assert.Same(t, b, d.FindByReference(b.Reference()))
	assert.Nil(t, d.FindByReference(404))
	assert.Len(t, d.ListByKind(KindIndividual), 2)
	assert.Len(t, d.ListByKind(KindCompany), 1)

	d.Remove(a)
	assert.Equal(t, []*Customer{b, c}, d.List())
	d.Remove(a)
	assert.Equal(t, 2, d.Count())
}

func TestDirectory_Capacity(t *testing.T) {
	f := NewFactory()
	d := NewDirectory("full")
	for i := 0; i < DirectoryCapacity+5; i++ {
		d.Add(f.NewCompany("Co", "addr", 0, "contact"))
	}
	assert.True(t, d.IsFull())
	assert.Equal(t, DirectoryCapacity, d.Count())
}
