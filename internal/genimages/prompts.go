package genimages

// ImagePrompts holds the generation prompts for one service card, one
// per card face.
type ImagePrompts struct {
	Back  string
	Front string
}

// servicePrompts maps the canonical service titles to their card art
// prompts. New services need an entry here before image generation
// works for them.
var servicePrompts = map[string]ImagePrompts{
	"Tráfego Pago": {
		Back:  "Dark tech aesthetic, black navy blue gradient background, neon blue cyan glowing dashboard with analytics charts and graphs, minimalist 3D illustration of ad campaign metrics, professional marketing agency visual, high contrast, no text, clean modern design, floating data visualization elements with blue glow",
		Front: "Dark tech aesthetic, black background, neon blue cyan glowing rocket launching upward with money symbols and target icons, minimalist 3D style, professional paid traffic concept, high contrast, no text, clean modern design with subtle blue particle effects",
	},
	"Produção de Conteúdo": {
		Back:  "Dark tech aesthetic, black navy blue gradient background, neon blue cyan glowing camera and video equipment, minimalist 3D illustration of content creation tools, professional studio visual, high contrast, no text, clean modern design, floating media elements with blue glow",
		Front: "Dark tech aesthetic, black background, neon blue cyan glowing play button with creative sparkles, minimalist 3D style, professional content production concept, high contrast, no text, clean modern design with video frame elements",
	},
	"Criação de Sites": {
		Back:  "Dark tech aesthetic, black navy blue gradient background, neon blue cyan glowing website wireframe mockup, minimalist 3D illustration of browser window with code elements, professional web development visual, high contrast, no text, clean modern design, floating UI components with blue glow",
		Front: "Dark tech aesthetic, black background, neon blue cyan glowing laptop with modern website displayed, minimalist 3D style, professional web design concept, high contrast, no text, clean modern design with responsive device mockups",
	},
	"Automação Inteligente": {
		Back:  "Dark tech aesthetic, black navy blue gradient background, neon blue cyan glowing robot with gears and circuits, minimalist 3D illustration of AI automation, professional tech visual, high contrast, no text, clean modern design, floating mechanical elements with blue glow",
		Front: "Dark tech aesthetic, black background, neon blue cyan glowing brain with neural network connections, minimalist 3D style, professional artificial intelligence concept, high contrast, no text, clean modern design with data flow elements",
	},
	"Consultoria Estratégica": {
		Back:  "Dark tech aesthetic, black navy blue gradient background, neon blue cyan glowing chess pieces and strategy board, minimalist 3D illustration of business planning, professional consulting visual, high contrast, no text, clean modern design, floating analytical elements with blue glow",
		Front: "Dark tech aesthetic, black background, neon blue cyan glowing lightbulb with growth chart arrows, minimalist 3D style, professional strategy concept, high contrast, no text, clean modern design with target and milestone elements",
	},
	"Lojas Online": {
		Back:  "Dark tech aesthetic, black navy blue gradient background, neon blue cyan glowing shopping cart with e-commerce interface, minimalist 3D illustration of online store dashboard, professional visual, high contrast, no text, clean modern design, floating product cards with blue glow",
		Front: "Dark tech aesthetic, black background, neon blue cyan glowing storefront with digital products, minimalist 3D style, professional e-commerce concept, high contrast, no text, clean modern design with payment and shipping icons",
	},
	"Gestão de Redes Sociais": {
		Back:  "Dark tech aesthetic, black navy blue gradient background, neon blue cyan glowing social media icons floating, minimalist 3D illustration of engagement metrics dashboard, professional social media visual, high contrast, no text, clean modern design, notification and like elements with blue glow",
		Front: "Dark tech aesthetic, black background, neon blue cyan glowing smartphone with social feed, minimalist 3D style, professional social management concept, high contrast, no text, clean modern design with hashtag and connection elements",
	},
	"Criação de Sistemas": {
		Back:  "Dark tech aesthetic, black navy blue gradient background, neon blue cyan glowing code editor with system architecture, minimalist 3D illustration of software development, professional tech visual, high contrast, no text, clean modern design, floating database and API elements with blue glow",
		Front: "Dark tech aesthetic, black background, neon blue cyan glowing server rack with data streams, minimalist 3D style, professional system development concept, high contrast, no text, clean modern design with cloud computing elements",
	},
	"Identidade Visual": {
		Back:  "Dark tech aesthetic, black navy blue gradient background, neon blue cyan glowing brand elements and color palette, minimalist 3D illustration of design tools, professional branding visual, high contrast, no text, clean modern design, floating typography and logo elements with blue glow",
		Front: "Dark tech aesthetic, black background, neon blue cyan glowing creative eye with design compass, minimalist 3D style, professional visual identity concept, high contrast, no text, clean modern design with gradient and shape elements",
	},
}

// PromptFor returns the prompt for a service title and card face.
func PromptFor(serviceTitle, imageType string) (string, bool) {
	prompts, ok := servicePrompts[serviceTitle]
	if !ok {
		return "", false
	}
	if imageType == "back" {
		return prompts.Back, true
	}
	return prompts.Front, true
}
