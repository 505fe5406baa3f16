package game_test

import (
	"os"
	"testing"

	"github.com/villaindle/go-server/internal/villains"
)

// Fixture catalog exercising every comparison rule. Morvax/Vexa share a
// universe token and an organization substring; Zil shares nothing.
func fixtureCatalog() []villains.Villain {
	return []villains.Villain{
		{
			ID: "morvax", Name: "Morvax",
			Universe: "Shadow Comics", Gender: "Male", Species: "Human",
			Type: "True Villain", Organization: "Shadow Council",
			Powers: []string{"Flight", "Toxins"}, Weaknesses: []string{"Fire"},
			FirstAppearanceYear: 1990, Alignment: "Chaotic Evil",
		},
		{
			ID: "vexa", Name: "Vexa",
			Universe: "Umbra Comics", Gender: "Female", Species: "Robot",
			Type: "Anti-Hero", Organization: "Council",
			Powers: []string{"Flight", "Hypnosis"}, Weaknesses: []string{},
			FirstAppearanceYear: 2000, Alignment: "Neutral Evil",
		},
		{
			ID: "zil", Name: "Zil",
			Universe: "Dreamlands", Gender: "Other", Species: "Spirit",
			Type: "Misguided", Organization: "None",
			Powers: []string{"Earthquakes"}, Weaknesses: []string{},
			FirstAppearanceYear: 2010, Alignment: "Lawful Neutral",
		},
		{ID: "w1", Name: "Wrong One", Universe: "U", Gender: "Male", Species: "Human", Type: "True Villain", Organization: "None", Powers: []string{"P"}, Weaknesses: []string{"W"}, FirstAppearanceYear: 1950, Alignment: "Chaotic Evil"},
		{ID: "w2", Name: "Wrong Two", Universe: "U", Gender: "Male", Species: "Human", Type: "True Villain", Organization: "None", Powers: []string{"P"}, Weaknesses: []string{"W"}, FirstAppearanceYear: 1951, Alignment: "Chaotic Evil"},
		{ID: "w3", Name: "Wrong Three", Universe: "U", Gender: "Male", Species: "Human", Type: "True Villain", Organization: "None", Powers: []string{"P"}, Weaknesses: []string{"W"}, FirstAppearanceYear: 1952, Alignment: "Chaotic Evil"},
		{ID: "w4", Name: "Wrong Four", Universe: "U", Gender: "Male", Species: "Human", Type: "True Villain", Organization: "None", Powers: []string{"P"}, Weaknesses: []string{"W"}, FirstAppearanceYear: 1953, Alignment: "Chaotic Evil"},
		{ID: "w5", Name: "Wrong Five", Universe: "U", Gender: "Male", Species: "Human", Type: "True Villain", Organization: "None", Powers: []string{"P"}, Weaknesses: []string{"W"}, FirstAppearanceYear: 1954, Alignment: "Chaotic Evil"},
	}
}

func mustVillain(t *testing.T, name string) villains.Villain {
	t.Helper()
	v, ok := villains.ByName(name)
	if !ok {
		t.Fatalf("fixture villain %q not found", name)
	}
	return v
}

func TestMain(m *testing.M) {
	if err := villains.Load(fixtureCatalog()); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
