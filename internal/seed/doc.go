// Package seed loads the recipe catalog a fresh store starts with.
//
// Seed files are YAML with a single top-level key:
//
//	recipes:
//	  - id: 1
//	    title: Classic Margherita Pizza
//	    category: Italian
//	    ingredients:
//	      - 1 pre-made pizza dough
//	    instructions: Preheat oven to 450°F ...
//	    image: margherita_pizza.jpg   # optional
//	    date_added: "2024-07-01"
//
// Every record is unified with the #Recipe definition in schema.cue and must
// be concrete. Ids must be unique and date_added must be a real calendar date.
// The default catalog is embedded in the binary.
package seed
