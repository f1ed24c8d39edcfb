package models

// CatalogEntry is one option of a fixed filter set.
type CatalogEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

var Characters = []CatalogEntry{
	{ID: "content-creator", Name: "A Content Creator", Image: "/A Content Creator.png"},
	{ID: "daddy", Name: "A Daddy", Image: "/A Daddy.png"},
	{ID: "dj", Name: "A DJ", Image: "/A DJ.png"},
	{ID: "sporty-person", Name: "A Sporty Person", Image: "/A Sporty Person.png"},
	{ID: "artist", Name: "An Artist", Image: "/An Artist.png"},
	{ID: "entity", Name: "An Entity", Image: "/An Entity.png"},
}

var Places = []CatalogEntry{
	{ID: "cultural-art-space", Name: "Cultural / Art Space", Image: "/Cultural or Art Space.png"},
	{ID: "traditional-market", Name: "Traditional Market", Image: "/Traditional Market.png"},
	{ID: "nature-beauty", Name: "Nature Beauty", Image: "/Nature Beauty.png"},
	{ID: "public-library", Name: "Public Library", Image: "/Public Library.png"},
	{ID: "public-park", Name: "Public Park", Image: "/Public Park.png"},
}

func findEntry(entries []CatalogEntry, id string) (CatalogEntry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}

	return CatalogEntry{}, false
}

func IsCharacter(id string) bool {
	_, ok := findEntry(Characters, id)
	return ok
}

func IsPlace(id string) bool {
	_, ok := findEntry(Places, id)
	return ok
}

// CharacterName returns the display name for a character id, or the id itself
// when it is not in the catalogue.
func CharacterName(id string) string {
	if e, ok := findEntry(Characters, id); ok {
		return e.Name
	}

	return id
}

// Query converts the filter into the query sent upstream. Sentinels become
// empty values. Places are stored upstream by display name.
func (f FilterState) Query(page, limit int) GalleryQuery {
	q := GalleryQuery{
		Page:  page,
		Limit: limit,
	}

	if f.Character != AllCharacters {
		q.Character = f.Character
	}

	if f.Place != AllPlaces {
		if e, ok := findEntry(Places, f.Place); ok {
			q.Place = e.Name
		} else {
			q.Place = f.Place
		}
	}

	return q
}
