package parser

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Taxonomy is the curated skill keyword list, grouped by category. Keywords
// are matched case-insensitively with word boundaries; dots inside keywords
// are optional at match time, so "node.js" also matches "nodejs".
type Taxonomy map[string][]string

// DefaultTaxonomy returns the built-in skill taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		"programming": {
			"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby", "go",
			"rust", "swift", "kotlin", "scala", "r", "matlab", "perl", "dart", "elixir",
			"clojure", "haskell", "lua", "assembly", "cobol", "fortran", "pascal",
		},
		"web_frontend": {
			"html", "css", "sass", "scss", "less", "bootstrap", "tailwind css", "foundation",
			"react", "angular", "vue.js", "vuejs", "svelte", "ember.js", "backbone.js",
			"jquery", "webpack", "vite", "parcel", "rollup", "gulp", "grunt",
		},
		"web_backend": {
			"nodejs", "node.js", "express", "django", "flask", "fastapi", "spring", "spring boot",
			"laravel", "rails", "ruby on rails", "asp.net", "next.js", "nuxt.js", "nestjs",
			"koa", "hapi", "strapi", "gin", "echo", "fiber",
		},
		"databases": {
			"sql", "mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle", "db2",
			"cassandra", "couchdb", "dynamodb", "elasticsearch", "neo4j", "influxdb",
			"mariadb", "cockroachdb", "firestore", "cosmos db",
		},
		"cloud_devops": {
			"aws", "amazon web services", "azure", "microsoft azure", "gcp", "google cloud",
			"docker", "kubernetes", "jenkins", "gitlab ci", "github actions", "terraform",
			"ansible", "chef", "puppet", "vagrant", "ci/cd", "heroku", "vercel", "netlify",
		},
		"data_science": {
			"machine learning", "deep learning", "artificial intelligence", "data science",
			"data analysis", "tensorflow", "pytorch", "keras", "scikit-learn", "pandas",
			"numpy", "matplotlib", "seaborn", "plotly", "jupyter", "r studio", "tableau",
			"power bi", "excel", "spark", "hadoop", "airflow", "mlflow",
		},
		"mobile": {
			"ios", "android", "react native", "flutter", "xamarin", "ionic", "cordova",
			"swift", "objective-c", "kotlin", "java android", "dart flutter",
		},
		"tools": {
			"git", "github", "gitlab", "bitbucket", "svn", "linux", "ubuntu", "centos",
			"windows", "macos", "vim", "vscode", "intellij", "eclipse", "sublime text",
			"atom", "postman", "insomnia", "slack", "teams", "zoom",
		},
		"design": {
			"photoshop", "illustrator", "figma", "sketch", "adobe xd", "canva", "blender",
			"after effects", "premiere pro", "indesign", "ui/ux", "user experience",
			"user interface", "wireframing", "prototyping",
		},
		"methodologies": {
			"agile", "scrum", "kanban", "devops", "microservices", "api", "rest", "restful",
			"graphql", "soap", "grpc", "unit testing", "integration testing", "tdd", "bdd",
			"test driven development", "behavior driven development", "leadership",
			"communication", "teamwork", "problem solving",
		},
	}
}

// Categories returns the category names in sorted order.
func (t Taxonomy) Categories() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// taxonomyFile is the on-disk shape of a custom taxonomy.
type taxonomyFile struct {
	Categories map[string][]string `yaml:"categories"`
}

// LoadTaxonomyFile reads a custom taxonomy from a YAML file. An empty or
// category-less file is rejected so a bad deploy cannot silently disable
// skill extraction.
func LoadTaxonomyFile(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}

	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file %s: %w", path, err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy file %s defines no categories", path)
	}

	taxonomy := make(Taxonomy, len(file.Categories))
	for category, keywords := range file.Categories {
		if len(keywords) == 0 {
			continue
		}
		taxonomy[category] = keywords
	}
	if len(taxonomy) == 0 {
		return nil, fmt.Errorf("taxonomy file %s defines only empty categories", path)
	}
	return taxonomy, nil
}
