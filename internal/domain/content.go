package domain

import "time"

// Skill is one skill category shown in the about section.
type Skill struct {
	ID           string   `json:"id"`
	Category     string   `json:"category"`
	Icon         string   `json:"icon"`
	Technologies []string `json:"technologies"`
	Color        string   `json:"color"`
}

// AboutStats are the headline numbers of the about section.
type AboutStats struct {
	Projects    int `json:"projects"`
	Years       int `json:"years"`
	LinesOfCode int `json:"linesOfCode"`
}

// AboutContent is the about-page content. It is edited locally by the admin
// and lives only in the client snapshot; the API does not serve it.
type AboutContent struct {
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Description []string   `json:"description"`
	Stats       AboutStats `json:"stats"`
	Skills      []Skill    `json:"skills"`
	Avatar      string     `json:"avatar"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SocialLinks holds profile URLs.
type SocialLinks struct {
	Github   string `json:"github"`
	Linkedin string `json:"linkedin"`
	Twitter  string `json:"twitter"`
}

// ResponseTime holds the advertised response-time promises.
type ResponseTime struct {
	Email    string `json:"email"`
	Projects string `json:"projects"`
	Urgent   string `json:"urgent"`
}

// ContactInfo is the contact-section content. Like AboutContent it is
// client-side only.
type ContactInfo struct {
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Location     string       `json:"location"`
	Discord      string       `json:"discord"`
	SocialLinks  SocialLinks  `json:"socialLinks"`
	ResponseTime ResponseTime `json:"responseTime"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Role is an admin user's permission level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// AdminUser is the signed-in session user.
type AdminUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	LastLogin time.Time `json:"lastLogin"`
}

// ContentSnapshot is the aggregate content persisted to the local cache.
// It is the fallback source for reads when the API is unreachable.
type ContentSnapshot struct {
	Projects     []Project    `json:"projects"`
	BlogPosts    []BlogPost   `json:"blogPosts"`
	AboutContent AboutContent `json:"aboutContent"`
	ContactInfo  ContactInfo  `json:"contactInfo"`
}

// DefaultAboutContent returns the about content shown before the admin has
// edited anything.
func DefaultAboutContent(now time.Time) AboutContent {
	return AboutContent{
		Title:    "Digital Architect",
		Subtitle: "Full Stack Developer & Digital Artist",
		Description: []string{
			"Greetings, fellow digital wanderer. I'm a full-stack developer and digital artist who thrives at the intersection of cutting-edge technology and creative expression.",
			"With over 5 years of experience crafting immersive digital experiences, I specialize in building applications that not only function flawlessly but also inspire and engage users through innovative design and seamless interactions.",
			"When I'm not coding, you'll find me exploring the latest in AI technology, creating digital art, or diving deep into cyberpunk literature and aesthetics.",
		},
		Stats: AboutStats{Projects: 50, Years: 5, LinesOfCode: 100000},
		Skills: []Skill{
			{ID: "1", Category: "Frontend Development", Icon: "Code", Color: "cyber-blue",
				Technologies: []string{"React", "TypeScript", "Next.js", "Vue.js", "Tailwind CSS", "Three.js"}},
			{ID: "2", Category: "Backend Development", Icon: "Zap", Color: "cyber-green",
				Technologies: []string{"Node.js", "Python", "GraphQL", "PostgreSQL", "MongoDB", "Redis"}},
			{ID: "3", Category: "Design & Creative", Icon: "Palette", Color: "cyber-pink",
				Technologies: []string{"Figma", "Adobe Creative Suite", "Blender", "After Effects", "UI/UX Design"}},
			{ID: "4", Category: "AI & Machine Learning", Icon: "Brain", Color: "cyber-purple",
				Technologies: []string{"TensorFlow", "PyTorch", "OpenAI API", "Computer Vision", "NLP"}},
		},
		UpdatedAt: now,
	}
}

// DefaultContactInfo returns the contact info shown before the admin has
// edited anything.
func DefaultContactInfo(now time.Time) ContactInfo {
	return ContactInfo{
		Email:       "contact@cyberdev.com",
		Phone:       "+1 (555) 123-4567",
		Location:    "Neo Tokyo, Cyber District",
		Discord:     "CyberDev#1337",
		SocialLinks: SocialLinks{Github: "#", Linkedin: "#", Twitter: "#"},
		ResponseTime: ResponseTime{
			Email:    "Within 24 hours",
			Projects: "Same day",
			Urgent:   "Within 2 hours",
		},
		UpdatedAt: now,
	}
}
