package types

// Category groups frameworks for display.
type Category int

const (
	CategoryOther Category = iota
	CategoryFrontend
	CategoryBackend
	CategoryTesting
)

func (c Category) String() string {
	switch c {
	case CategoryFrontend:
		return "Frontend"
	case CategoryBackend:
		return "Backend"
	case CategoryTesting:
		return "Testing"
	default:
		return "Other"
	}
}

// Framework identifies a known framework or library.
type Framework int

const (
	React Framework = iota + 1
	Vue
	Angular
	NextJS
	ThreeJS
	Svelte
	TailwindCSS
	MaterialUI
	Bootstrap
	ChakraUI
	Express
	NestJS
	Fastify
	Redux
	MobX
	Jest
	Cypress
	Django
	Flask
	FastAPI
	SQLAlchemy
	Pytest
	Rails
	Laravel
	Symfony
	SpringBoot
	Hibernate
	AspNetCore
)

type frameworkInfo struct {
	name     string
	category Category
}

var frameworks = map[Framework]frameworkInfo{
	React:       {"React", CategoryFrontend},
	Vue:         {"Vue.js", CategoryFrontend},
	Angular:     {"Angular", CategoryFrontend},
	NextJS:      {"Next.js", CategoryFrontend},
	ThreeJS:     {"Three.js", CategoryFrontend},
	Svelte:      {"Svelte", CategoryFrontend},
	TailwindCSS: {"Tailwind CSS", CategoryFrontend},
	MaterialUI:  {"Material UI", CategoryFrontend},
	Bootstrap:   {"Bootstrap", CategoryFrontend},
	ChakraUI:    {"Chakra UI", CategoryFrontend},
	Express:     {"Express.js", CategoryBackend},
	NestJS:      {"NestJS", CategoryBackend},
	Fastify:     {"Fastify", CategoryBackend},
	Redux:       {"Redux", CategoryOther},
	MobX:        {"MobX", CategoryOther},
	Jest:        {"Jest", CategoryTesting},
	Cypress:     {"Cypress", CategoryTesting},
	Django:      {"Django", CategoryBackend},
	Flask:       {"Flask", CategoryBackend},
	FastAPI:     {"FastAPI", CategoryBackend},
	SQLAlchemy:  {"SQLAlchemy", CategoryOther},
	Pytest:      {"Pytest", CategoryTesting},
	Rails:       {"Ruby on Rails", CategoryBackend},
	Laravel:     {"Laravel", CategoryBackend},
	Symfony:     {"Symfony", CategoryBackend},
	SpringBoot:  {"Spring Boot", CategoryBackend},
	Hibernate:   {"Hibernate", CategoryOther},
	AspNetCore:  {"ASP.NET Core", CategoryBackend},
}

// String returns the display name.
func (f Framework) String() string {
	if info, ok := frameworks[f]; ok {
		return info.name
	}
	return "Unknown"
}

// Category returns the display group of the framework.
func (f Framework) Category() Category {
	return frameworks[f].category
}

// UnknownVersion marks a framework whose version could not be resolved.
const UnknownVersion = "?"
