package models

// Subjects — фиксированный набор предметов колледжа
var Subjects = []string{
	"transport",
	"computer",
	"math",
	"economics",
	"azerbaijani",
	"english",
	"physical",
	"pedagogy",
	"agriculture",
	"history",
}

// Modules — три категории материалов внутри предмета
var Modules = []string{"lecture", "colloquium", "seminar"}

func ValidSubject(key string) bool {
	for _, s := range Subjects {
		if s == key {
			return true
		}
	}
	return false
}

func ValidModule(key string) bool {
	for _, m := range Modules {
		if m == key {
			return true
		}
	}
	return false
}

// SeedDocument возвращает документ с начальными учётными данными
func SeedDocument() *Document {
	return &Document{
		Files: FileTree{},
		Teachers: map[string]TeacherCredential{
			"Nəqliyyat":           {Password: "pass1234", Subject: "transport"},
			"Kompyuter sistemləri": {Password: "pass1234", Subject: "computer"},
			"Riyaziyyat":          {Password: "pass1234", Subject: "math"},
			"İqtisadiyyat":        {Password: "pass1234", Subject: "economics"},
			"Azərbaycan dili":     {Password: "pass1234", Subject: "azerbaijani"},
			"İngilis dili":        {Password: "pass1234", Subject: "english"},
			"Fiziki tərbiyə":      {Password: "pass1234", Subject: "physical"},
			"Pedaqogika":          {Password: "pass1234", Subject: "pedagogy"},
			"Kənd təsərrüfatı":    {Password: "pass1234", Subject: "agriculture"},
			"Tarix":               {Password: "pass1234", Subject: "history"},
		},
		Modules: map[string]ModuleCredential{
			"transport":   {Username: "neqliyyat", Password: "pass1234"},
			"computer":    {Username: "kompyuter", Password: "pass1234"},
			"math":        {Username: "riyaziyyat", Password: "pass1234"},
			"economics":   {Username: "iqtisadiyyat", Password: "pass1234"},
			"azerbaijani": {Username: "azdili", Password: "pass1234"},
			"english":     {Username: "ingilisdili", Password: "pass1234"},
			"physical":    {Username: "fiziki", Password: "pass1234"},
			"pedagogy":    {Username: "pedagogiya", Password: "pass1234"},
			"agriculture": {Username: "kend", Password: "pass1234"},
			"history":     {Username: "tarix", Password: "pass1234"},
		},
	}
}
