package posts

import (
	"github.com/newsdesk/internal/http/handlers/shared"
	"github.com/newsdesk/internal/http/response"
	"github.com/newsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgPostIDRequired   = "Post ID is required"
	msgInternalError    = "Internal server error"
	msgFetchPostsFailed = "Failed to fetch posts"
	msgFetchPostFailed  = "Failed to fetch post"
	msgCreatePostFailed = "Failed to create post"
	msgUpdatePostFailed = "Failed to update post"
	msgDeletePostFailed = "Failed to delete post"
	msgCategoriesFailed = "Failed to fetch categories"
)

var postCommonErrorRules = []shared.MappedError{
	{Target: service.ErrPostNotFound, Code: response.CodeNotFound, Message: "Post not found"},
}

var postWriteErrorRules = []shared.MappedError{
	{Target: service.ErrPostInvalid, Code: response.CodeBadRequest, Message: "Header and content are required"},
	{Target: service.ErrAuthorNotFound, Code: response.CodeNotFound, Message: "Author not found"},
	{Target: service.ErrSlugExists, Code: response.CodeConflict, Message: "A post with this title already exists"},
}

var postOwnershipErrorRules = []shared.MappedError{
	{Target: service.ErrPostUpdateForbidden, Code: response.CodeForbidden, Message: "Unauthorized: You can only update your own posts"},
	{Target: service.ErrPostDeleteForbidden, Code: response.CodeForbidden, Message: "Unauthorized: You can only delete your own posts"},
}

func respondPostReadError(c *gin.Context, err error) {
	shared.RespondWithMappedError(c, err, postCommonErrorRules, response.CodeInternal, msgFetchPostFailed)
}

func respondPostCreateError(c *gin.Context, err error) {
	shared.RespondWithMappedError(c, err, postWriteErrorRules, response.CodeInternal, msgCreatePostFailed)
}

func respondPostUpdateError(c *gin.Context, err error) {
	rules := shared.ConcatMappedErrors(postCommonErrorRules, postOwnershipErrorRules, postWriteErrorRules)
	shared.RespondWithMappedError(c, err, rules, response.CodeInternal, msgUpdatePostFailed)
}

func respondPostDeleteError(c *gin.Context, err error) {
	rules := shared.ConcatMappedErrors(postCommonErrorRules, postOwnershipErrorRules)
	shared.RespondWithMappedError(c, err, rules, response.CodeInternal, msgDeletePostFailed)
}
