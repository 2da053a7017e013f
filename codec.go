package estate

import jsoniter "github.com/json-iterator/go"

// json is the codec shared by all models, messages and configuration
// documents of this package.
var json = jsoniter.ConfigCompatibleWithStandardLibrary
