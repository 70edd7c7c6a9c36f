package anf

// Component roles emitted by this program.
const (
	RoleBody         = "body"
	RoleTitle        = "title"
	RoleHeading      = "heading" // heading1..heading6 derived with level suffix
	RoleIntro        = "intro"
	RoleByline       = "byline"
	RoleAuthor       = "author"
	RoleDate         = "date"
	RolePhoto        = "photo"
	RoleImage        = "image"
	RoleFigure       = "figure"
	RoleGallery      = "gallery"
	RoleVideo        = "video"
	RoleEmbedVideo   = "embedwebvideo"
	RoleAudio        = "audio"
	RoleMusic        = "music"
	RolePodcast      = "podcast"
	RoleTweet        = "tweet"
	RoleInstagram    = "instagram"
	RoleFacebookPost = "facebook_post"
	RoleTikTok       = "tiktok"
	RoleEmbedGeneric = "embedgeneric"
	RoleQuote        = "quote"
	RolePullquote    = "pullquote"
	RoleTable        = "htmltable"
	RoleDivider      = "divider"
	RoleContainer    = "container"
	RoleSection      = "section"
	RoleCaption      = "caption"
	RoleBanner       = "banner_advertisement"
	RoleLinkButton   = "link_button"
	RoleARKit        = "arkit"
)

// AnchorTargetPosition values understood by News renderers.
const (
	AnchorPositionNone  = ""
	AnchorPositionLeft  = "left"
	AnchorPositionRight = "right"
	AnchorPositionAuto  = "auto"
)
