package types

// TemplateCategory groups templates in the gallery.
type TemplateCategory string

// Template categories.
const (
	CategoryProfessional TemplateCategory = "Professional"
	CategoryCreative     TemplateCategory = "Creative"
	CategorySimple       TemplateCategory = "Simple"
	CategoryModern       TemplateCategory = "Modern"
)

// Template describes a visual resume template.
type Template struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	PreviewImage string           `json:"preview_image"`
	Description  string           `json:"description"`
	Category     TemplateCategory `json:"category"`
}

var templates = []Template{
	{
		ID:           "professional-1",
		Name:         "Gregory Walls",
		PreviewImage: "/templates/professional-1.png",
		Description:  "A classic design with sidebar layout for professional roles.",
		Category:     CategoryProfessional,
	},
	{
		ID:           "modern-1",
		Name:         "Travis Willis",
		PreviewImage: "/templates/modern-1.png",
		Description:  "A clean design with colored header and profile photo.",
		Category:     CategoryModern,
	},
	{
		ID:           "creative-1",
		Name:         "Patricia Giordano",
		PreviewImage: "/templates/creative-1.png",
		Description:  "A vibrant template with colored header and rounded elements.",
		Category:     CategoryCreative,
	},
	{
		ID:           "simple-1",
		Name:         "Howard Jones",
		PreviewImage: "/templates/simple-1.png",
		Description:  "A minimalist design perfect for legal and corporate roles.",
		Category:     CategorySimple,
	},
	{
		ID:           "modern-2",
		Name:         "Sophie Wright",
		PreviewImage: "/templates/modern-2.png",
		Description:  "A sophisticated design with clean sections and icons.",
		Category:     CategoryModern,
	},
	{
		ID:           "creative-2",
		Name:         "Sebastian Wilder",
		PreviewImage: "/templates/creative-2.png",
		Description:  "An eye-catching template with colorful sidebar for creative roles.",
		Category:     CategoryCreative,
	},
}

// Templates returns a copy of the built-in template catalog.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateByID returns the template with the given id, or nil.
func TemplateByID(id string) *Template {
	for i := range templates {
		if templates[i].ID == id {
			t := templates[i]
			return &t
		}
	}
	return nil
}
