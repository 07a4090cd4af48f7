package socialimages

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Functions evaluated in the page. Both engines call them with JSON arguments.
const (
	setTitleJS = `(selector, html) => {
	const title = document.querySelector(selector);
	if (!title) {
		throw new Error("no element matches " + selector);
	}
	title.innerHTML = html;
}`

	setBackgroundJS = `(selector, cover) => {
	const main = document.querySelector(selector);
	if (!main) {
		throw new Error("no element matches " + selector);
	}
	main.style.backgroundImage = "url(" + cover + ")";
}`

	setFeatureListJS = `(selector, features) => {
	const grid = document.querySelector(selector);
	if (!grid) {
		return -1;
	}
	grid.innerHTML = "";
	for (const s of features || []) {
		const feature = document.createElement("div");
		feature.classList.add("hfeature", "nogrow");
		feature.innerHTML = ` + "`" + `
		<div class="circle pro-icon">
		<img alt="" src="${s.icon ?? ""}" width="60px" height="60px">
		</div>
		<div class="pro-size">${s.size ?? ""} <span class="pro-unit">${s.unit ?? ""}</span></div>
		` + "`" + `;
		grid.appendChild(feature);
	}
	return grid.children.length;
}`

	fontsReadyJS = `() => document.fonts.ready.then(() => true)`
)

// invocation returns a JS expression calling fn with the JSON encoded args.
func invocation(fn string, args ...interface{}) (string, error) {
	encoded := make([]string, 0, len(args))
	for _, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("error encoding script argument: %w", err)
		}
		encoded = append(encoded, string(b))
	}
	return fmt.Sprintf("(%s)(%s)", fn, strings.Join(encoded, ", ")), nil
}
