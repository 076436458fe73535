package wordpress

import (
	"fmt"
	"strings"
)

// postFields is shared by every post query
const postFields = `
fragment PostFields on Post {
  id
  databaseId
  uri
  title(format: RENDERED)
  slug
  status
  link
  date
  content(format: RENDERED)
  excerpt(format: RENDERED)
  featuredImage {
    node {
      sourceUrl
      altText
      mediaDetails { width height }
    }
  }
}
`

const postsQuery = `
query GetPosts($first: Int!) {
  posts(first: $first, where: {orderby: {field: DATE, order: DESC}}) {
    edges { node { ...PostFields } }
  }
}
` + postFields

const postBySlugQuery = `
query GetPostBySlug($slug: String!) {
  postBy(slug: $slug) {
    ...PostFields
    categories { nodes { id name slug } }
  }
}
` + postFields

const categoryPostsQuery = `
query CategoryPosts($category: String!, $first: Int!) {
  posts(first: $first, where: {categoryName: $category, orderby: {field: DATE, order: DESC}}) {
    nodes { ...PostFields }
  }
}
` + postFields

const relatedPostsQuery = `
query RelatedPosts($category: String!, $exclude: [ID], $first: Int!) {
  posts(first: $first, where: {categoryName: $category, notIn: $exclude, orderby: {field: DATE, order: DESC}}) {
    nodes { ...PostFields }
  }
}
` + postFields

const createCommentMutation = `
mutation AddComment($postId: Int!, $content: String!, $author: String!, $email: String!) {
  createComment(input: {commentOn: $postId, content: $content, author: $author, authorEmail: $email}) {
    success
  }
}
`

// homeSection is one aliased posts() selection of the homepage query
type homeSection struct {
	Alias    string
	Category string
	First    int
}

// homeSections are fetched together in one round trip. Trending has no
// category of its own and reuses politics.
var homeSections = []homeSection{
	{"featured", "featured-news", 1},
	{"politics", "politics", 6},
	{"society", "society", 6},
	{"breaking", "breaking-news", 6},
	{"economy", "economy", 6},
	{"technology", "technology-science", 6},
	{"arts", "arts", 6},
	{"sports", "sports", 6},
	{"world", "world", 6},
	{"podcast", "podcast", 6},
	{"latest", "latest-news", 12},
}

var homePageQuery = buildHomePageQuery(homeSections)

func buildHomePageQuery(sections []homeSection) string {
	var b strings.Builder
	b.WriteString("query HomePagePosts {\n")
	for _, s := range sections {
		fmt.Fprintf(&b, "  %s: posts(first: %d, where: {categoryName: %q, orderby: {field: DATE, order: DESC}}) {\n    nodes { ...PostFields }\n  }\n",
			s.Alias, s.First, s.Category)
	}
	b.WriteString("}\n")
	b.WriteString(postFields)
	return b.String()
}
