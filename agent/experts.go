package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/stockroom"
	"github.com/etnz/stockroom/docs"
	"github.com/etnz/stockroom/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They keep the context of your previous questions.

			The user runs a small stock room. They come to know what is running low,
			what to reorder, how much the stock is worth, or how to use the stock command.
			Devise a plan of questions to ask each expert and answer in markdown.

			The user assumes you know their item names: ask the Storekeeper first.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewBuyer returns an expert grounded on Google Search, to find suppliers
// and current prices.
func NewBuyer() *Expert {
	return &Expert{
		Name: "Buyer",
		Description: `The Buyer knows suppliers, catalogs and current market prices.
		Ask the Buyer whenever you need recent or grounding information about a product.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are a purchasing expert. You leverage Google Search to find products,
			suppliers and prices, and ground every assertion you make.
		`),
		},
	}
}

// NewStorekeeper returns the expert that reads inv. It never modifies it.
func NewStorekeeper(inv *stockroom.Inventory, currency string) *Expert {
	lib := Tools(inv, currency)
	return &Expert{
		Name: "Storekeeper",
		Description: `The Storekeeper reads the user's inventory: items, quantities,
		prices, low stock thresholds, change history and totals. The Storekeeper
		also knows the documentation of the stock command.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are the storekeeper of the user's inventory. Use the Tools to answer
			questions about items, stock levels and values. Pardon the approximate
			item names of your colleagues and search for them.
			You cannot change the inventory: explain the stock command to run instead.
		`),
		},
		Library: NewLibrary(lib),
	}
}

// Tools returns the read only functions over inv.
func Tools(inv *stockroom.Inventory, currency string) []*Func {
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name: "ListItems",
				Description: `ListItems returns a markdown report of the items selected by a
				filter mode and a name search, followed by the inventory totals.`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"mode": {
							Type:        genai.TypeString,
							Description: "Filter mode, default all.\n\n" + must(docs.Topic("filters")),
							Enum:        []string{"all", "low", "zero", "recent"},
						},
						"search": {
							Type:        genai.TypeString,
							Description: "Case insensitive substring of the item names, empty for all.",
						},
					},
				},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				mode, err := stringArg(args, "mode", false)
				if err != nil {
					return "", err
				}
				m, err := stockroom.ParseFilterMode(mode)
				if err != nil {
					return "", err
				}
				search, err := stringArg(args, "search", false)
				if err != nil {
					return "", err
				}
				return renderer.RenderReport(renderer.NewReport(inv, m, search, currency, stockroom.Now())), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "ItemDetails",
				Description: "ItemDetails returns an item's quantity, price, threshold and its latest changes, newest first.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":    {Type: genai.TypeString, Description: "The exact item name, case sensitive."},
						"changes": {Type: genai.TypeInteger, Description: "Number of changes to return, default 5, at most 20."},
					},
					Required: []string{"name"},
				},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				name, err := stringArg(args, "name", true)
				if err != nil {
					return "", err
				}
				n, err := intArg(args, "changes", 5)
				if err != nil {
					return "", err
				}
				it, ok := inv.Get(name)
				if !ok {
					return "", fmt.Errorf("no item named %q, known items are: %s", name, strings.Join(inv.Names(), ", "))
				}
				return renderer.RenderItem(name, it, n, currency), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Stats",
				Description: "Stats returns the number of items, the total stock value and the number of low stock items.",
			},
			Func: func(context.Context, map[string]any) (string, error) {
				return renderer.RenderStats(inv.Stats(), currency), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Topic",
				Description: "Topic returns a documentation topic of the stock command, one of: " + strings.Join(docs.Topics(), ", ") + ". The empty name is the overview.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": {Type: genai.TypeString, Description: "Topic name."},
					},
				},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				name, err := stringArg(args, "name", false)
				if err != nil {
					return "", err
				}
				if name == "" {
					return docs.Join()
				}
				return docs.Topic(name)
			},
		},
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
