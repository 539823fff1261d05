package graph

// DefaultEdges returns the curated directed edge table. Weights run from 1
// (loosely related) to 3 (implies). New mirrors every edge, so an edge only
// needs to be listed once.
func DefaultEdges() Edges {
	return Edges{
		"django": {
			"python": 3, "rest": 2, "web": 2, "backend": 2,
		},
		"flask": {
			"python": 3, "rest": 2, "backend": 2,
		},
		"fastapi": {
			"python": 3, "rest": 3, "backend": 2,
		},
		"pandas": {
			"python": 3, "numpy": 3, "data science": 2,
		},
		"numpy": {
			"python": 3, "data science": 2,
		},
		"scikit learn": {
			"python": 3, "machine learning": 3,
		},
		"tensorflow": {
			"python": 2, "machine learning": 3, "deep learning": 3,
		},
		"pytorch": {
			"python": 2, "machine learning": 3, "deep learning": 3,
		},
		"keras": {
			"tensorflow": 3, "deep learning": 2,
		},
		"deep learning": {
			"machine learning": 3,
		},
		"machine learning": {
			"data science": 2,
		},

		"spring boot": {
			"spring": 3, "java": 3, "rest": 2, "microservices": 2,
		},
		"spring": {
			"java": 3, "backend": 2,
		},
		"hibernate": {
			"java": 3, "sql": 2,
		},
		"kotlin": {
			"java": 2, "android": 2,
		},
		"android": {
			"java": 2, "mobile": 2,
		},
		"swift": {
			"ios": 3, "mobile": 2,
		},
		"flutter": {
			"dart": 3, "mobile": 2,
		},
		"react native": {
			"react": 3, "mobile": 2,
		},

		"react": {
			"javascript": 3, "frontend": 2, "redux": 1,
		},
		"angular": {
			"typescript": 3, "frontend": 2,
		},
		"vue.js": {
			"javascript": 3, "frontend": 2,
		},
		"next.js": {
			"react": 3, "node.js": 1,
		},
		"typescript": {
			"javascript": 3,
		},
		"node.js": {
			"javascript": 3, "backend": 2, "express": 2,
		},
		"express": {
			"node.js": 3, "rest": 2,
		},
		"html": {
			"css": 2, "frontend": 2,
		},
		"css": {
			"frontend": 2,
		},

		"golang": {
			"go": 3,
		},
		"go": {
			"backend": 2, "microservices": 1,
		},
		"gin": {
			"go": 3, "rest": 2,
		},
		"grpc": {
			"microservices": 2, "protobuf": 3,
		},
		"graphql": {
			"api": 2,
		},
		"rest": {
			"api": 3,
		},
		"ruby on rails": {
			"ruby": 3, "backend": 2,
		},
		"laravel": {
			"php": 3, "backend": 2,
		},
		"asp.net": {
			".net": 3, "c#": 3,
		},
		".net": {
			"c#": 2,
		},

		"postgresql": {
			"sql": 3, "database": 2,
		},
		"mysql": {
			"sql": 3, "database": 2,
		},
		"sqlite": {
			"sql": 3,
		},
		"mongodb": {
			"nosql": 3, "database": 2,
		},
		"redis": {
			"nosql": 2, "caching": 3,
		},
		"cassandra": {
			"nosql": 3,
		},
		"dynamodb": {
			"nosql": 3, "aws": 2,
		},
		"elasticsearch": {
			"search": 3, "nosql": 1,
		},
		"kafka": {
			"messaging": 3, "microservices": 1,
		},
		"rabbitmq": {
			"messaging": 3,
		},

		"kubernetes": {
			"docker": 3, "devops": 2, "helm": 2, "cloud": 1,
		},
		"docker": {
			"devops": 2, "containers": 3,
		},
		"terraform": {
			"devops": 2, "cloud": 2,
		},
		"ansible": {
			"devops": 2, "linux": 1,
		},
		"jenkins": {
			"ci cd": 3, "devops": 2,
		},
		"github actions": {
			"ci cd": 3, "github": 2,
		},
		"gitlab": {
			"git": 3, "ci cd": 2,
		},
		"github": {
			"git": 3,
		},
		"linux": {
			"bash": 2, "devops": 2, "unix": 2,
		},
		"aws": {
			"cloud": 3, "lambda": 2, "ec2": 2, "s3": 2,
		},
		"azure": {
			"cloud": 3,
		},
		"gcp": {
			"cloud": 3,
		},
		"prometheus": {
			"monitoring": 3, "grafana": 2,
		},
		"spark": {
			"big data": 3, "scala": 2, "python": 1,
		},
		"hadoop": {
			"big data": 3, "java": 1,
		},
		"airflow": {
			"python": 2, "etl": 2,
		},
	}
}
