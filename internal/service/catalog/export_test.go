package catalog

var MutationCounter = catalogMutations
