package component

// AnimEventSender marks entities whose completed animation cycles are
// published to the shared event queue.
type AnimEventSender struct{}

var AnimEventSenderComponent = NewComponent[AnimEventSender]()

// AnimScript runs a Tengo script whenever an animation of the entity
// completes a cycle. An empty Path uses the script named by the sheet config.
type AnimScript struct {
	Path string
}

var AnimScriptComponent = NewComponent[AnimScript]()
