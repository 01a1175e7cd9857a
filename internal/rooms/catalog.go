package rooms

// TypeProfile describes the decorative dressing for a room category: the
// props scattered around it and the line shown beneath the header.
type TypeProfile struct {
	Items   []string `json:"items"`
	Message string   `json:"message"`
}

var typeProfiles = map[RoomType]TypeProfile{
	TypeRoom:     {Items: []string{"🪑", "🖼️", "🕯️"}, Message: "A standard room in the mansion."},
	TypeHallway:  {Items: []string{"🚪", "🪞", "💡"}, Message: "Long corridors connect the mansion's wings."},
	TypeLibrary:  {Items: []string{"📚", "📜", "🔍"}, Message: "Ancient tomes line the dusty shelves."},
	TypeKitchen:  {Items: []string{"🍳", "🔪", "🥘"}, Message: "The heart of the mansion, still warm."},
	TypeGarden:   {Items: []string{"🌹", "🌳", "🦋"}, Message: "Nature reclaims what was once manicured."},
	TypeBasement: {Items: []string{"🔦", "⛓️", "🕸️"}, Message: "Dark secrets lurk in the depths."},
	TypeAttic:    {Items: []string{"📦", "🕯️", "🦇"}, Message: "Forgotten memories gather dust above."},
	TypeGallery:  {Items: []string{"🖼️", "🗿", "🎭"}, Message: "Portraits watch your every move."},
	TypeStudy:    {Items: []string{"📖", "🖋️", "🔮"}, Message: "The master's private sanctuary."},
	TypeVault:    {Items: []string{"🔐", "💎", "📜"}, Message: "Treasures and secrets await the worthy."},
}

// Profile returns the decorative profile for the given room type, falling back
// to the plain room profile for unknown categories.
func Profile(t RoomType) TypeProfile {
	if profile, ok := typeProfiles[t]; ok {
		return profile
	}
	return typeProfiles[TypeRoom]
}
