package handlers

// Registry bundles every handler group the router mounts.
type Registry struct {
	Auth    *AuthHandler
	Posts   *PostHandler
	Comment *CommentHandler
	Users   *UserHandler
}
