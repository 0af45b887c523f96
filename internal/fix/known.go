package fix

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// React module-level exports.
var reactSymbols = []string{
	"Fragment", "Component", "PureComponent", "memo", "forwardRef",
	"createContext", "useContext", "useState", "useEffect", "useReducer",
	"useCallback", "useMemo", "useRef", "useImperativeHandle", "useLayoutEffect",
	"useDebugValue", "createRef", "isValidElement", "Children", "cloneElement",
	"createElement", "createFactory", "lazy", "Suspense", "StrictMode",
}

// shadcn/ui component names keyed to their kebab-case module.
var shadcnComponents = map[string]string{
	"Accordion":                "accordion",
	"AccordionContent":         "accordion",
	"AccordionItem":            "accordion",
	"AccordionTrigger":         "accordion",
	"Alert":                    "alert",
	"AlertDescription":         "alert",
	"AlertTitle":               "alert",
	"AlertDialog":              "alert-dialog",
	"AlertDialogAction":        "alert-dialog",
	"AlertDialogCancel":        "alert-dialog",
	"AlertDialogContent":       "alert-dialog",
	"AlertDialogDescription":   "alert-dialog",
	"AlertDialogFooter":        "alert-dialog",
	"AlertDialogHeader":        "alert-dialog",
	"AlertDialogTitle":         "alert-dialog",
	"AlertDialogTrigger":       "alert-dialog",
	"AspectRatio":              "aspect-ratio",
	"Avatar":                   "avatar",
	"AvatarFallback":           "avatar",
	"AvatarImage":              "avatar",
	"Badge":                    "badge",
	"Button":                   "button",
	"Calendar":                 "calendar",
	"Card":                     "card",
	"CardContent":              "card",
	"CardDescription":          "card",
	"CardFooter":               "card",
	"CardHeader":               "card",
	"CardTitle":                "card",
	"Carousel":                 "carousel",
	"CarouselContent":          "carousel",
	"CarouselItem":             "carousel",
	"CarouselNext":             "carousel",
	"CarouselPrevious":         "carousel",
	"Checkbox":                 "checkbox",
	"Collapsible":              "collapsible",
	"CollapsibleContent":       "collapsible",
	"CollapsibleTrigger":       "collapsible",
	"Command":                  "command",
	"CommandDialog":            "command",
	"CommandEmpty":             "command",
	"CommandGroup":             "command",
	"CommandInput":             "command",
	"CommandItem":              "command",
	"CommandList":              "command",
	"CommandSeparator":         "command",
	"CommandShortcut":          "command",
	"ContextMenu":              "context-menu",
	"ContextMenuCheckboxItem":  "context-menu",
	"ContextMenuContent":       "context-menu",
	"ContextMenuItem":          "context-menu",
	"ContextMenuLabel":         "context-menu",
	"ContextMenuRadioGroup":    "context-menu",
	"ContextMenuRadioItem":     "context-menu",
	"ContextMenuSeparator":     "context-menu",
	"ContextMenuShortcut":      "context-menu",
	"ContextMenuSub":           "context-menu",
	"ContextMenuSubContent":    "context-menu",
	"ContextMenuSubTrigger":    "context-menu",
	"ContextMenuTrigger":       "context-menu",
	"Dialog":                   "dialog",
	"DialogContent":            "dialog",
	"DialogDescription":        "dialog",
	"DialogFooter":             "dialog",
	"DialogHeader":             "dialog",
	"DialogTitle":              "dialog",
	"DialogTrigger":            "dialog",
	"Drawer":                   "drawer",
	"DrawerClose":              "drawer",
	"DrawerContent":            "drawer",
	"DrawerDescription":        "drawer",
	"DrawerFooter":             "drawer",
	"DrawerHeader":             "drawer",
	"DrawerTitle":              "drawer",
	"DrawerTrigger":            "drawer",
	"DropdownMenu":             "dropdown-menu",
	"DropdownMenuCheckboxItem": "dropdown-menu",
	"DropdownMenuContent":      "dropdown-menu",
	"DropdownMenuGroup":        "dropdown-menu",
	"DropdownMenuItem":         "dropdown-menu",
	"DropdownMenuLabel":        "dropdown-menu",
	"DropdownMenuPortal":       "dropdown-menu",
	"DropdownMenuRadioGroup":   "dropdown-menu",
	"DropdownMenuRadioItem":    "dropdown-menu",
	"DropdownMenuSeparator":    "dropdown-menu",
	"DropdownMenuShortcut":     "dropdown-menu",
	"DropdownMenuSub":          "dropdown-menu",
	"DropdownMenuSubContent":   "dropdown-menu",
	"DropdownMenuSubTrigger":   "dropdown-menu",
	"DropdownMenuTrigger":      "dropdown-menu",
	"Form":                     "form",
	"FormControl":              "form",
	"FormDescription":          "form",
	"FormField":                "form",
	"FormItem":                 "form",
	"FormLabel":                "form",
	"FormMessage":              "form",
	"HoverCard":                "hover-card",
	"HoverCardContent":         "hover-card",
	"HoverCardTrigger":         "hover-card",
	"Input":                    "input",
	"Label":                    "label",
	"Menubar":                  "menubar",
	"MenubarCheckboxItem":      "menubar",
	"MenubarContent":           "menubar",
	"MenubarItem":              "menubar",
	"MenubarLabel":             "menubar",
	"MenubarMenu":              "menubar",
	"MenubarRadioGroup":        "menubar",
	"MenubarRadioItem":         "menubar",
	"MenubarSeparator":         "menubar",
	"MenubarShortcut":          "menubar",
	"MenubarSub":               "menubar",
	"MenubarSubContent":        "menubar",
	"MenubarSubTrigger":        "menubar",
	"MenubarTrigger":           "menubar",
	"NavigationMenu":           "navigation-menu",
	"NavigationMenuContent":    "navigation-menu",
	"NavigationMenuIndicator":  "navigation-menu",
	"NavigationMenuItem":       "navigation-menu",
	"NavigationMenuLink":       "navigation-menu",
	"NavigationMenuList":       "navigation-menu",
	"NavigationMenuTrigger":    "navigation-menu",
	"NavigationMenuViewport":   "navigation-menu",
	"Pagination":               "pagination",
	"PaginationContent":        "pagination",
	"PaginationEllipsis":       "pagination",
	"PaginationItem":           "pagination",
	"PaginationLink":           "pagination",
	"PaginationNext":           "pagination",
	"PaginationPrevious":       "pagination",
	"Popover":                  "popover",
	"PopoverContent":           "popover",
	"PopoverTrigger":           "popover",
	"Progress":                 "progress",
	"RadioGroup":               "radio-group",
	"RadioGroupItem":           "radio-group",
	"ScrollArea":               "scroll-area",
	"ScrollBar":                "scroll-area",
	"Select":                   "select",
	"SelectContent":            "select",
	"SelectGroup":              "select",
	"SelectItem":               "select",
	"SelectLabel":              "select",
	"SelectSeparator":          "select",
	"SelectTrigger":            "select",
	"SelectValue":              "select",
	"Separator":                "separator",
	"Sheet":                    "sheet",
	"SheetClose":               "sheet",
	"SheetContent":             "sheet",
	"SheetDescription":         "sheet",
	"SheetFooter":              "sheet",
	"SheetHeader":              "sheet",
	"SheetTitle":               "sheet",
	"SheetTrigger":             "sheet",
	"Skeleton":                 "skeleton",
	"Slider":                   "slider",
	"Switch":                   "switch",
	"Table":                    "table",
	"TableBody":                "table",
	"TableCaption":             "table",
	"TableCell":                "table",
	"TableFooter":              "table",
	"TableHead":                "table",
	"TableHeader":              "table",
	"TableRow":                 "table",
	"Tabs":                     "tabs",
	"TabsContent":              "tabs",
	"TabsList":                 "tabs",
	"TabsTrigger":              "tabs",
	"Textarea":                 "textarea",
	"Toast":                    "toast",
	"ToastAction":              "toast",
	"ToastClose":               "toast",
	"ToastDescription":         "toast",
	"ToastProvider":            "toast",
	"ToastTitle":               "toast",
	"ToastViewport":            "toast",
	"Toggle":                   "toggle",
	"ToggleGroup":              "toggle-group",
	"ToggleGroupItem":          "toggle-group",
	"Tooltip":                  "tooltip",
	"TooltipContent":           "tooltip",
	"TooltipProvider":          "tooltip",
	"TooltipTrigger":           "tooltip",
}

// Next.js framework imports.
var nextImports = map[string][]string{
	"next/router":     {"useRouter", "withRouter", "Router"},
	"next/head":       {"Head"},
	"next/image":      {"Image"},
	"next/link":       {"Link"},
	"next/script":     {"Script"},
	"next/navigation": {"usePathname", "useRouter", "useSearchParams", "redirect"},
	"next/server":     {"NextRequest", "NextResponse"},
}

// Fallback lucide-react icon names, used when lucide_icons.json is
// absent next to the tool config.
var lucideFallback = []string{
	"Sun", "Moon", "Star", "Heart", "User", "Search",
	"Menu", "X", "Camera", "Bell", "Check", "AlertCircle",
	"ArrowRight", "ArrowLeft", "ChevronDown", "ChevronUp",
	"ChevronLeft", "ChevronRight", "Plus", "Minus", "Trash2",
	"Edit", "Settings", "Home", "Mail", "Phone", "MapPin",
	"Calendar", "Clock", "Download", "Upload", "ExternalLink",
	"Eye", "EyeOff", "Filter", "Globe", "Info", "Loader2",
	"Lock", "LogIn", "LogOut", "Play", "Pause", "Send",
	"Share2", "ShoppingCart", "Sparkles", "Building2", "Users",
	"Zap", "Github", "Twitter", "Linkedin", "Facebook", "Instagram",
}

// knownExternals resolves well-known symbols to their package
// specifiers. Symbols defined inside the project win over these, so
// the table is only consulted after an export-index miss.
type knownExternals struct {
	alias  string
	lucide map[string]bool
	next   map[string]string
}

func newKnownExternals(projectRoot, alias string) *knownExternals {
	k := &knownExternals{
		alias:  alias,
		lucide: make(map[string]bool),
		next:   make(map[string]string),
	}
	for _, icon := range loadLucideIcons(projectRoot) {
		k.lucide[icon] = true
	}
	for source, symbols := range nextImports {
		for _, s := range symbols {
			// First source wins for duplicates like useRouter.
			if _, ok := k.next[s]; !ok || source == "next/navigation" {
				k.next[s] = source
			}
		}
	}
	return k
}

// loadLucideIcons reads lucide_icons.json from the project root when
// present, falling back to the embedded list.
func loadLucideIcons(projectRoot string) []string {
	data, err := os.ReadFile(filepath.Join(projectRoot, "lucide_icons.json"))
	if err != nil {
		return lucideFallback
	}
	var icons []string
	if err := json.Unmarshal(data, &icons); err != nil {
		return lucideFallback
	}
	return icons
}

// Lookup returns the import specifier for a known external symbol.
// All the sources here use named exports.
func (k *knownExternals) Lookup(symbol string) (string, bool) {
	if module, ok := shadcnComponents[symbol]; ok {
		return k.alias + "/components/ui/" + module, true
	}
	if k.lucide[symbol] {
		return "lucide-react", true
	}
	for _, s := range reactSymbols {
		if s == symbol {
			return "react", true
		}
	}
	if source, ok := k.next[symbol]; ok {
		return source, true
	}
	return "", false
}
