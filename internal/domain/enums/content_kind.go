package enums

type ContentKind string

const (
	ContentKindAd         ContentKind = "ad"
	ContentKindBlog       ContentKind = "blog"
	ContentKindEvent      ContentKind = "event"
	ContentKindDiscussion ContentKind = "discussion"
	ContentKindBusiness   ContentKind = "business"
)

func (k ContentKind) Valid() bool {
	switch k {
	case ContentKindAd, ContentKindBlog, ContentKindEvent, ContentKindDiscussion, ContentKindBusiness:
		return true
	}
	return false
}

func ContentKinds() []ContentKind {
	return []ContentKind{
		ContentKindAd,
		ContentKindBlog,
		ContentKindEvent,
		ContentKindDiscussion,
		ContentKindBusiness,
	}
}
